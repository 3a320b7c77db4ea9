package models

// FeedbackEntry is one product rating flattened for the feedback page,
// newest first.
type FeedbackEntry struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	UserFullName string `json:"userFullName"`
	Stars        int    `json:"stars"`
	Comment      string `json:"comment"`
	RatingImage  string `json:"ratingImage,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

package models

// FeedKind separates direct notifications from buyer activity log entries in
// the merged notifications feed.
type FeedKind string

const (
	KindNotification FeedKind = "notif"
	KindActivityLog  FeedKind = "log"
)

// Buyer activity log actions that surface in the merchant feed.
const (
	ActionPurchased = "purchased"
	ActionReceived  = "received"
)

// Notification is a direct notification under notifications/{userId}/{id}.
type Notification struct {
	Message    string `json:"message"`
	FromUserID string `json:"fromUserId,omitempty"`
	IsRead     bool   `json:"isRead"`
	Timestamp  int64  `json:"timestamp"`
}

// ActivityLog is one buyer action under userActivityLogs/{userId}/{id}.
type ActivityLog struct {
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// FeedEntry is one row of the merged notifications feed.
type FeedEntry struct {
	ID               string   `json:"id"`
	Kind             FeedKind `json:"kind"`
	Message          string   `json:"message"`
	SenderName       string   `json:"senderName,omitempty"`
	SenderProfileURL string   `json:"senderProfileUrl,omitempty"`
	IsRead           bool     `json:"isRead"`
	Timestamp        int64    `json:"timestamp"`
}

package analytics

import (
	"sort"

	"shopdash/models"
)

// FlattenRatings projects every rating under a shop's products into a flat
// feedback list, newest first.
func FlattenRatings(products map[string]models.Product) []models.FeedbackEntry {
	productIDs := make([]string, 0, len(products))
	for pid := range products {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)

	var feedback []models.FeedbackEntry
	for _, pid := range productIDs {
		p := products[pid]
		name := p.ProductName
		if name == "" {
			name = "Unnamed Product"
		}
		for _, r := range p.Ratings {
			user := r.UserFullName
			if user == "" {
				user = "Anonymous"
			}
			feedback = append(feedback, models.FeedbackEntry{
				ProductID:    pid,
				ProductName:  name,
				ProductImage: p.ImageURL,
				UserFullName: user,
				Stars:        r.Stars,
				Comment:      r.Comment,
				RatingImage:  r.ImageURL,
				Timestamp:    r.Timestamp,
			})
		}
	}

	sort.SliceStable(feedback, func(i, j int) bool {
		return feedback[i].Timestamp > feedback[j].Timestamp
	})
	return feedback
}

// AverageRating is the mean star count across all ratings of a shop's
// products, zero when there are none.
func AverageRating(products map[string]models.Product) float64 {
	var sum, n int
	for _, p := range products {
		for _, r := range p.Ratings {
			sum += r.Stars
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// GroupByType buckets products by their catalog group.
func GroupByType(products map[string]models.Product) map[string][]models.Product {
	productIDs := make([]string, 0, len(products))
	for pid := range products {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)

	groups := make(map[string][]models.Product)
	for _, pid := range productIDs {
		p := products[pid]
		if p.ID == "" {
			p.ID = pid
		}
		t := models.NormalizeProductType(p.ProductType)
		groups[t] = append(groups[t], p)
	}
	return groups
}

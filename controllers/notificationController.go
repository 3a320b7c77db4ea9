package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/auth"
	"shopdash/models"
	"shopdash/store"
)

// NotificationController merges direct notifications with buyer activity
// logs into one feed.
type NotificationController struct {
	Store store.TreeStore
	Log   *zap.Logger
}

func (nc *NotificationController) senderOf(c *gin.Context, users map[string]models.User, userID string) models.User {
	if u, ok := users[userID]; ok {
		return u
	}
	var u models.User
	err := nc.Store.Get(c.Request.Context(), "users/"+userID, &u)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		nc.Log.Warn("sender lookup failed", zap.String("userId", userID), zap.Error(err))
	}
	users[userID] = u
	return u
}

// ListNotifications returns the merged feed, newest first, and marks the
// unread direct notifications as read in one multi-path write.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	s := auth.SessionFrom(c)
	ctx := c.Request.Context()

	var notifs map[string]models.Notification
	err := nc.Store.Get(ctx, "notifications/"+s.UserID, &notifs)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		nc.Log.Error("notifications read failed", zap.String("userId", s.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}

	var logs map[string]map[string]models.ActivityLog
	err = nc.Store.Get(ctx, "userActivityLogs", &logs)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		nc.Log.Error("activity logs read failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}

	users := make(map[string]models.User)
	var feed []models.FeedEntry
	markRead := make(map[string]any)

	for id, n := range notifs {
		entry := models.FeedEntry{
			ID:        id,
			Kind:      models.KindNotification,
			Message:   n.Message,
			IsRead:    n.IsRead,
			Timestamp: n.Timestamp,
		}
		if n.FromUserID != "" {
			sender := nc.senderOf(c, users, n.FromUserID)
			entry.SenderName = sender.FullName()
			if entry.SenderName == "" {
				entry.SenderName = "Unknown"
			}
			entry.SenderProfileURL = sender.ProfilePicURL
		}
		if !n.IsRead {
			markRead["notifications/"+s.UserID+"/"+id+"/isRead"] = true
		}
		feed = append(feed, entry)
	}

	for buyerID, byUser := range logs {
		for id, l := range byUser {
			var message string
			switch l.Action {
			case models.ActionPurchased:
				message = "placed an order"
			case models.ActionReceived:
				message = "received a product"
			default:
				continue
			}
			sender := nc.senderOf(c, users, buyerID)
			feed = append(feed, models.FeedEntry{
				ID:               id,
				Kind:             models.KindActivityLog,
				Message:          sender.FullName() + " " + message,
				SenderName:       sender.FullName(),
				SenderProfileURL: sender.ProfilePicURL,
				IsRead:           true,
				Timestamp:        l.Timestamp,
			})
		}
	}

	if len(markRead) > 0 {
		if err := nc.Store.Update(ctx, markRead); err != nil {
			nc.Log.Warn("mark-read failed", zap.String("userId", s.UserID), zap.Error(err))
		}
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Timestamp > feed[j].Timestamp })
	if feed == nil {
		feed = []models.FeedEntry{}
	}
	c.JSON(http.StatusOK, feed)
}

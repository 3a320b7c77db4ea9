package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/auth"
	"shopdash/blob"
	"shopdash/models"
	"shopdash/store"
)

// ProfileController edits the merchant's own account record.
type ProfileController struct {
	Store store.TreeStore
	Blobs blob.Store
	Log   *zap.Logger
}

// GetProfile returns the account record, subscription fields included.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	s := auth.SessionFrom(c)

	var user models.User
	err := pc.Store.Get(c.Request.Context(), "users/"+s.UserID, &user)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User info not found"})
		return
	}
	if err != nil {
		pc.Log.Error("profile read failed", zap.String("userId", s.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile writes the editable profile fields. Nothing is committed
// locally until the store accepts the write.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := auth.SessionFrom(c)
	base := "users/" + s.UserID
	updates := map[string]any{
		base + "/firstName": req.FirstName,
		base + "/lastName":  req.LastName,
		base + "/phone":     req.Phone,
		base + "/address":   req.Address,
	}
	if req.ProfilePicURL != "" {
		updates[base+"/profilePicUrl"] = req.ProfilePicURL
	}

	if err := pc.Store.Update(c.Request.Context(), updates); err != nil {
		pc.Log.Error("profile update failed", zap.String("userId", s.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save changes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UploadProfilePicture stores a new profile picture and points the account
// record at it.
func (pc *ProfileController) UploadProfilePicture(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	s := auth.SessionFrom(c)
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	name := fmt.Sprintf("profile_pics/%s_%d", s.UserID, time.Now().UnixMilli())
	url, err := pc.Blobs.Save(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
	if err != nil {
		pc.Log.Error("profile picture upload failed", zap.String("userId", s.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload picture"})
		return
	}

	if err := pc.Store.Update(c.Request.Context(), map[string]any{
		"users/" + s.UserID + "/profilePicUrl": url,
	}); err != nil {
		pc.Log.Error("profile picture write failed", zap.String("userId", s.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save picture"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profilePicUrl": url})
}

package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campusboard/middleware"
	"campusboard/models"
	"campusboard/services/announcement"
	"campusboard/services/intelligence"
	"campusboard/services/storage"
	"campusboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AnnouncementHandler exposes the public feed and the admin authoring
// endpoints.
type AnnouncementHandler struct {
	Svc    announcement.AnnouncementService
	Images storage.ImageStore
}

func NewAnnouncementHandler(svc announcement.AnnouncementService, images storage.ImageStore) *AnnouncementHandler {
	return &AnnouncementHandler{Svc: svc, Images: images}
}

// ListHandler handles GET /api/announcements.
func (h *AnnouncementHandler) ListHandler(c *gin.Context) {
	anns, err := h.Svc.List()
	if err != nil {
		utils.GetLogger().Error("failed to list announcements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch announcements"})
		return
	}
	c.JSON(http.StatusOK, anns)
}

// GetHandler handles GET /api/announcements/:id.
func (h *AnnouncementHandler) GetHandler(c *gin.Context) {
	ann, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("failed to fetch announcement", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch announcement"})
		return
	}
	if ann == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, ann)
}

// CreateHandler handles POST /api/announcements (multipart form).
func (h *AnnouncementHandler) CreateHandler(c *gin.Context) {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	input := models.InsertAnnouncement{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		Category:   c.PostForm("category"),
		AuthorID:   usr.ID,
		AuthorName: usr.DisplayName(),
	}

	start, end, ok := h.parseEventRange(c)
	if !ok {
		return
	}
	input.EventStartDate = start
	input.EventEndDate = end

	if fileHeader, err := c.FormFile("image"); err == nil {
		imageURL, ok := h.storeImage(c, fileHeader)
		if !ok {
			return
		}
		input.ImageURL = imageURL
	}

	ann, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		h.writeServiceError(c, err, "Failed to create announcement")
		return
	}
	c.JSON(http.StatusCreated, ann)
}

// UpdateHandler handles PUT /api/announcements/:id (multipart form,
// partial: absent fields are left untouched).
func (h *AnnouncementHandler) UpdateHandler(c *gin.Context) {
	var patch models.AnnouncementPatch
	if title := c.PostForm("title"); title != "" {
		patch.Title = &title
	}
	if content := c.PostForm("content"); content != "" {
		patch.Content = &content
	}
	if category := c.PostForm("category"); category != "" {
		patch.Category = &category
	}

	start, end, ok := h.parseEventRange(c)
	if !ok {
		return
	}
	patch.EventStartDate = start
	patch.EventEndDate = end

	if fileHeader, err := c.FormFile("image"); err == nil {
		imageURL, ok := h.storeImage(c, fileHeader)
		if !ok {
			return
		}
		patch.ImageURL = &imageURL
	}

	ann, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update announcement")
		return
	}
	if ann == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, ann)
}

// DeleteHandler handles DELETE /api/announcements/:id.
func (h *AnnouncementHandler) DeleteHandler(c *gin.Context) {
	deleted, err := h.Svc.Delete(c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("failed to delete announcement", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete announcement"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeHandler handles POST /api/summarize. An unavailable
// summarizer is a graceful outcome, not an error.
func (h *AnnouncementHandler) SummarizeHandler(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
		return
	}

	summary, err := h.Svc.Summarize(c.Request.Context(), req.Text)
	var verr *announcement.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
		return
	case errors.Is(err, intelligence.ErrUnavailable):
		c.JSON(http.StatusOK, gin.H{
			"summary": nil,
			"message": "AI summarization is not available. Please add your announcement content manually.",
		})
		return
	case err != nil:
		utils.GetLogger().Error("failed to generate summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// parseEventRange reads the optional event date form fields. A malformed
// date writes a 400 and returns ok=false.
func (h *AnnouncementHandler) parseEventRange(c *gin.Context) (start, end *time.Time, ok bool) {
	parse := func(field string) (*time.Time, bool) {
		raw := c.PostForm(field)
		if raw == "" {
			return nil, true
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + field + "; expected RFC 3339"})
			return nil, false
		}
		return &t, true
	}
	if start, ok = parse("eventStartDate"); !ok {
		return nil, nil, false
	}
	if end, ok = parse("eventEndDate"); !ok {
		return nil, nil, false
	}
	return start, end, true
}

// storeImage validates and stores an uploaded image, returning its URL.
// Validation failures write the response and return ok=false.
func (h *AnnouncementHandler) storeImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, bool) {
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image must be 5MB or smaller"})
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
		return "", false
	}

	tempFilePath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.GetLogger().Error("failed to save upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
		return "", false
	}
	defer os.Remove(tempFilePath)

	imageURL, err := h.Images.Upload(c.Request.Context(), tempFilePath, "announcements")
	if err != nil {
		utils.GetLogger().Error("failed to store image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return "", false
	}
	return imageURL, true
}

// writeServiceError maps announcement service errors onto HTTP responses.
func (h *AnnouncementHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	var verr *announcement.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
		return
	}
	utils.GetLogger().Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

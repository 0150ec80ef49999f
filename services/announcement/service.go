package announcement

import (
	"context"
	"strings"
	"time"

	"campusboard/models"
	"campusboard/services/intelligence"
	"campusboard/utils"

	"go.uber.org/zap"
)

const maxTitleLength = 200

// List returns the public feed, newest first.
func (s *DefaultAnnouncementService) List() ([]models.Announcement, error) {
	return s.Repo.ListAnnouncements()
}

// Get returns a single announcement, or (nil, nil) when absent.
func (s *DefaultAnnouncementService) Get(id string) (*models.Announcement, error) {
	return s.Repo.GetAnnouncement(id)
}

// Create validates the input, attaches a best-effort summary, and
// persists a new announcement.
func (s *DefaultAnnouncementService) Create(ctx context.Context, input models.InsertAnnouncement) (*models.Announcement, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, newValidationError("content", "Content is required")
	}
	if !models.ValidCategory(input.Category) {
		return nil, newValidationError("category", "Valid category is required")
	}
	if err := validateEventRange(input.EventStartDate, input.EventEndDate); err != nil {
		return nil, err
	}

	if input.Summary == "" {
		input.Summary = s.summarize(ctx, input.Content, intelligence.AutoSummaryMinChars)
	}
	return s.Repo.CreateAnnouncement(input)
}

// Update validates the provided fields, regenerates the summary when the
// content changed, and merges the patch. Absent id returns (nil, nil).
func (s *DefaultAnnouncementService) Update(ctx context.Context, id string, patch models.AnnouncementPatch) (*models.Announcement, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, newValidationError("content", "Content is required")
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return nil, newValidationError("category", "Valid category is required")
	}
	if err := validateEventRange(patch.EventStartDate, patch.EventEndDate); err != nil {
		return nil, err
	}

	if patch.Content != nil && patch.Summary == nil {
		if summary := s.summarize(ctx, *patch.Content, intelligence.AutoSummaryMinChars); summary != "" {
			patch.Summary = &summary
		}
	}
	return s.Repo.UpdateAnnouncement(id, patch)
}

// Delete removes an announcement, reporting whether one existed.
func (s *DefaultAnnouncementService) Delete(id string) (bool, error) {
	return s.Repo.DeleteAnnouncement(id)
}

// Summarize produces a summary for the given text on demand. Returns
// intelligence.ErrUnavailable when no summarizer is configured.
func (s *DefaultAnnouncementService) Summarize(ctx context.Context, text string) (string, error) {
	if len(text) < intelligence.SummaryMinChars {
		return "", newValidationError("text", "Text must be at least 50 characters long")
	}
	if s.Summarizer == nil {
		return "", intelligence.ErrUnavailable
	}
	return s.Summarizer.Summarize(ctx, text)
}

// summarize is the best-effort variant used during create/update:
// failures are logged and downgraded to "no summary".
func (s *DefaultAnnouncementService) summarize(ctx context.Context, content string, minChars int) string {
	if s.Summarizer == nil || len(content) < minChars {
		return ""
	}
	summary, err := s.Summarizer.Summarize(ctx, content)
	if err != nil {
		utils.GetLogger().Warn("summary generation failed, continuing without one", zap.Error(err))
		return ""
	}
	return summary
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return newValidationError("title", "Title is required")
	}
	if len(title) > maxTitleLength {
		return newValidationError("title", "Title is too long")
	}
	return nil
}

func validateEventRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return newValidationError("eventEndDate", "Event end date must not precede the start date")
	}
	return nil
}

package announcement

import (
	"context"

	"campusboard/database/repository"
	"campusboard/models"
	"campusboard/services/intelligence"
)

// AnnouncementService is the authoring and feed surface over the record
// store. Validation happens here, before any store mutation; summaries
// are best-effort and never block a mutation.
type AnnouncementService interface {
	List() ([]models.Announcement, error)
	Get(id string) (*models.Announcement, error)
	Create(ctx context.Context, input models.InsertAnnouncement) (*models.Announcement, error)
	Update(ctx context.Context, id string, patch models.AnnouncementPatch) (*models.Announcement, error)
	Delete(id string) (bool, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// DefaultAnnouncementService is the production implementation.
// Summarizer may be nil, in which case no summaries are produced.
type DefaultAnnouncementService struct {
	Repo       repository.RecordRepository
	Summarizer intelligence.Summarizer
}

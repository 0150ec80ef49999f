// models/announcement.go
package models

import "time"

// Announcement categories understood by the board.
const (
	CategoryAcademic = "Academic"
	CategoryEvents   = "Events"
	CategoryGeneral  = "General"
)

// ValidCategory reports whether the given category is one of the fixed set.
func ValidCategory(category string) bool {
	switch category {
	case CategoryAcademic, CategoryEvents, CategoryGeneral:
		return true
	}
	return false
}

// Announcement is a published notice on the board.
type Announcement struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Summary        string     `json:"summary,omitempty"`
	Category       string     `json:"category"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	EventStartDate *time.Time `json:"eventStartDate,omitempty"`
	EventEndDate   *time.Time `json:"eventEndDate,omitempty"`
	AuthorID       string     `json:"authorId"`
	AuthorName     string     `json:"authorName"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// InsertAnnouncement carries the caller-supplied fields for a new
// announcement. ID and timestamps are assigned by the record store.
type InsertAnnouncement struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Summary        string     `json:"summary,omitempty"`
	Category       string     `json:"category"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	EventStartDate *time.Time `json:"eventStartDate,omitempty"`
	EventEndDate   *time.Time `json:"eventEndDate,omitempty"`
	AuthorID       string     `json:"authorId"`
	AuthorName     string     `json:"authorName"`
}

// AnnouncementPatch is an explicit partial update: nil fields are left
// untouched. ID and CreatedAt are never patchable.
type AnnouncementPatch struct {
	Title          *string    `json:"title,omitempty"`
	Content        *string    `json:"content,omitempty"`
	Summary        *string    `json:"summary,omitempty"`
	Category       *string    `json:"category,omitempty"`
	ImageURL       *string    `json:"imageUrl,omitempty"`
	EventStartDate *time.Time `json:"eventStartDate,omitempty"`
	EventEndDate   *time.Time `json:"eventEndDate,omitempty"`
}

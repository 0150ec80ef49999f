// database/repository/repository.go
package repository

import (
	"fmt"

	"campusboard/models"
)

// RecordRepository owns the board's JSON document and its CRUD contract.
// Absent records are reported as nil (or false for deletes), never as
// errors; errors are reserved for I/O failures.
type RecordRepository interface {
	// User operations.
	GetUser(id string) (*models.User, error)
	FindUsersByField(field, value string) ([]models.User, error)
	UpsertUser(data models.UpsertUser) (*models.User, error)

	// Announcement operations.
	ListAnnouncements() ([]models.Announcement, error)
	GetAnnouncement(id string) (*models.Announcement, error)
	CreateAnnouncement(data models.InsertAnnouncement) (*models.Announcement, error)
	UpdateAnnouncement(id string, patch models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(id string) (bool, error)
}

// StorageError wraps a failure to persist the document. It is propagated
// to the caller untouched and never retried here, since a silent retry
// could mask data loss.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

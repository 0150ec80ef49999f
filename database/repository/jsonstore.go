// database/repository/jsonstore.go
package repository

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"campusboard/models"
	"campusboard/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JSONRecordRepo persists the whole database document to a single JSON
// file. Every mutation is read-entire-document, mutate, write-entire-
// document. The mutex serializes mutations within this process only;
// concurrent writers in other processes can still lose updates. That is
// a documented limitation of the single-admin deployment model, not
// something this layer tries to fix.
type JSONRecordRepo struct {
	path string
	mu   sync.Mutex
}

// NewJSONRecordRepo creates a repository backed by the JSON document at
// the given path. The file is created lazily on first write.
func NewJSONRecordRepo(path string) *JSONRecordRepo {
	return &JSONRecordRepo{path: path}
}

// readDatabase loads the document. A missing, unreadable, or malformed
// file reads as the empty database so a fresh deployment (or a corrupted
// document) never takes the store down.
func (r *JSONRecordRepo) readDatabase() models.Database {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.EmptyDatabase()
	}
	var db models.Database
	if err := json.Unmarshal(data, &db); err != nil {
		utils.GetLogger().Warn("malformed database document, starting empty",
			zap.String("path", r.path), zap.Error(err))
		return models.EmptyDatabase()
	}
	if db.Announcements == nil {
		db.Announcements = []models.Announcement{}
	}
	if db.Users == nil {
		db.Users = []models.User{}
	}
	return db
}

// writeDatabase rewrites the document in full, pretty-printed.
func (r *JSONRecordRepo) writeDatabase(op string, db models.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		utils.GetLogger().Error("failed to write database document",
			zap.String("path", r.path), zap.String("op", op), zap.Error(err))
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

// GetUser looks up a user by id. Absent users return (nil, nil).
func (r *JSONRecordRepo) GetUser(id string) (*models.User, error) {
	db := r.readDatabase()
	for i := range db.Users {
		if db.Users[i].ID == id {
			usr := db.Users[i]
			return &usr, nil
		}
	}
	return nil, nil
}

// FindUsersByField scans for users whose named field equals value.
// Unknown field names match nothing.
func (r *JSONRecordRepo) FindUsersByField(field, value string) ([]models.User, error) {
	db := r.readDatabase()
	var matches []models.User
	for _, usr := range db.Users {
		var got string
		switch field {
		case "id":
			got = usr.ID
		case "email":
			got = usr.Email
		case "firstName":
			got = usr.FirstName
		case "lastName":
			got = usr.LastName
		case "profileImageUrl":
			got = usr.ProfileImageURL
		default:
			continue
		}
		if got == value {
			matches = append(matches, usr)
		}
	}
	return matches, nil
}

// UpsertUser inserts or updates the user with data.ID. Updates merge
// non-empty fields over the existing record and preserve the original
// CreatedAt; inserts stamp both timestamps.
func (r *JSONRecordRepo) UpsertUser(data models.UpsertUser) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db := r.readDatabase()
	now := time.Now().UTC()

	for i := range db.Users {
		if db.Users[i].ID != data.ID {
			continue
		}
		usr := db.Users[i]
		if data.Email != "" {
			usr.Email = data.Email
		}
		if data.FirstName != "" {
			usr.FirstName = data.FirstName
		}
		if data.LastName != "" {
			usr.LastName = data.LastName
		}
		if data.ProfileImageURL != "" {
			usr.ProfileImageURL = data.ProfileImageURL
		}
		usr.UpdatedAt = now
		db.Users[i] = usr
		if err := r.writeDatabase("upsert user", db); err != nil {
			return nil, err
		}
		return &usr, nil
	}

	usr := models.User{
		ID:              data.ID,
		Email:           data.Email,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		ProfileImageURL: data.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	db.Users = append(db.Users, usr)
	if err := r.writeDatabase("upsert user", db); err != nil {
		return nil, err
	}
	return &usr, nil
}

// ListAnnouncements returns every announcement, newest first. The
// ordering is a contract for the public feed.
func (r *JSONRecordRepo) ListAnnouncements() ([]models.Announcement, error) {
	db := r.readDatabase()
	anns := make([]models.Announcement, len(db.Announcements))
	copy(anns, db.Announcements)
	sort.SliceStable(anns, func(i, j int) bool {
		return anns[i].CreatedAt.After(anns[j].CreatedAt)
	})
	return anns, nil
}

// GetAnnouncement looks up an announcement by id. Absent returns (nil, nil).
func (r *JSONRecordRepo) GetAnnouncement(id string) (*models.Announcement, error) {
	db := r.readDatabase()
	for i := range db.Announcements {
		if db.Announcements[i].ID == id {
			ann := db.Announcements[i]
			return &ann, nil
		}
	}
	return nil, nil
}

// CreateAnnouncement assigns a fresh id, stamps equal created/updated
// timestamps, appends and persists.
func (r *JSONRecordRepo) CreateAnnouncement(data models.InsertAnnouncement) (*models.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db := r.readDatabase()
	now := time.Now().UTC()
	ann := models.Announcement{
		ID:             uuid.NewString(),
		Title:          data.Title,
		Content:        data.Content,
		Summary:        data.Summary,
		Category:       data.Category,
		ImageURL:       data.ImageURL,
		EventStartDate: data.EventStartDate,
		EventEndDate:   data.EventEndDate,
		AuthorID:       data.AuthorID,
		AuthorName:     data.AuthorName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Announcements = append(db.Announcements, ann)
	if err := r.writeDatabase("create announcement", db); err != nil {
		return nil, err
	}
	return &ann, nil
}

// UpdateAnnouncement merges the patch over the stored record. ID and
// CreatedAt are re-pinned to their original values no matter what the
// patch carries; UpdatedAt always advances. An unknown id returns
// (nil, nil) and performs no write.
func (r *JSONRecordRepo) UpdateAnnouncement(id string, patch models.AnnouncementPatch) (*models.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db := r.readDatabase()
	for i := range db.Announcements {
		if db.Announcements[i].ID != id {
			continue
		}
		ann := db.Announcements[i]
		if patch.Title != nil {
			ann.Title = *patch.Title
		}
		if patch.Content != nil {
			ann.Content = *patch.Content
		}
		if patch.Summary != nil {
			ann.Summary = *patch.Summary
		}
		if patch.Category != nil {
			ann.Category = *patch.Category
		}
		if patch.ImageURL != nil {
			ann.ImageURL = *patch.ImageURL
		}
		if patch.EventStartDate != nil {
			ann.EventStartDate = patch.EventStartDate
		}
		if patch.EventEndDate != nil {
			ann.EventEndDate = patch.EventEndDate
		}
		ann.ID = db.Announcements[i].ID
		ann.CreatedAt = db.Announcements[i].CreatedAt
		ann.UpdatedAt = time.Now().UTC()
		db.Announcements[i] = ann
		if err := r.writeDatabase("update announcement", db); err != nil {
			return nil, err
		}
		return &ann, nil
	}
	return nil, nil
}

// DeleteAnnouncement removes the matching record and reports whether
// anything was removed. No write happens when nothing matched.
func (r *JSONRecordRepo) DeleteAnnouncement(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db := r.readDatabase()
	kept := db.Announcements[:0:0]
	for _, ann := range db.Announcements {
		if ann.ID != id {
			kept = append(kept, ann)
		}
	}
	if len(kept) == len(db.Announcements) {
		return false, nil
	}
	db.Announcements = kept
	if err := r.writeDatabase("delete announcement", db); err != nil {
		return false, err
	}
	return true, nil
}

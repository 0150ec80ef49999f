package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campusboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*JSONRecordRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return NewJSONRecordRepo(path), path
}

func validInsert() models.InsertAnnouncement {
	return models.InsertAnnouncement{
		Title:      "Exam Schedule",
		Content:    "Final exams run from June 10 to June 21.",
		Category:   models.CategoryAcademic,
		AuthorID:   "admin",
		AuthorName: "Admin",
	}
}

func TestCreateAndGetAnnouncement(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Exam Schedule", created.Title)
	assert.Equal(t, models.CategoryAcademic, created.Category)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt), "timestamps must be equal on creation")

	got, err := repo.GetAnnouncement(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)

	anns, err := repo.ListAnnouncements()
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, created.ID, anns[0].ID)
}

func TestGetAnnouncementAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetAnnouncement("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateAnnouncementPatchesOnlyProvidedFields(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	newTitle := "Revised Exam Schedule"
	updated, err := repo.UpdateAnnouncement(created.ID, models.AnnouncementPatch{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "createdAt must never change")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt must advance")
}

func TestUpdateAnnouncementAbsentPerformsNoWrite(t *testing.T) {
	repo, path := newTestRepo(t)

	updated, err := repo.UpdateAnnouncement("no-such-id", models.AnnouncementPatch{})
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no document should be written for an absent update")
}

func TestDeleteAnnouncementTwice(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)

	deleted, err := repo.DeleteAnnouncement(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetAnnouncement(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.DeleteAnnouncement(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListAnnouncementsSortsNewestFirst(t *testing.T) {
	repo, path := newTestRepo(t)

	// Seed the document directly so an older-dated record sits after a
	// newer one in the file.
	newer := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := models.Database{
		Announcements: []models.Announcement{
			{ID: "b", Title: "Newer", Content: "x", Category: models.CategoryGeneral, CreatedAt: newer, UpdatedAt: newer},
			{ID: "a", Title: "Older", Content: "x", Category: models.CategoryGeneral, CreatedAt: older, UpdatedAt: older},
		},
		Users: []models.User{},
	}
	data, err := json.MarshalIndent(db, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	anns, err := repo.ListAnnouncements()
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.Equal(t, "b", anns[0].ID)
	assert.Equal(t, "a", anns[1].ID)

	// A freshly created record lands at the top of the feed.
	created, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)
	anns, err = repo.ListAnnouncements()
	require.NoError(t, err)
	require.Len(t, anns, 3)
	assert.Equal(t, created.ID, anns[0].ID)
}

func TestUpsertUserPreservesCreatedAt(t *testing.T) {
	repo, _ := newTestRepo(t)

	first, err := repo.UpsertUser(models.UpsertUser{ID: "admin", Email: "admin@example.com"})
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

	time.Sleep(5 * time.Millisecond)

	second, err := repo.UpsertUser(models.UpsertUser{ID: "admin", FirstName: "Ada"})
	require.NoError(t, err)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "createdAt from the first upsert must persist")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updatedAt must advance")
	assert.Equal(t, "admin@example.com", second.Email, "untouched fields must survive the merge")
	assert.Equal(t, "Ada", second.FirstName)

	users, err := repo.FindUsersByField("email", "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, users, 1, "upsert must never duplicate a user id")
}

func TestFindUsersByField(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.UpsertUser(models.UpsertUser{ID: "admin", Email: "admin@example.com"})
	require.NoError(t, err)

	users, err := repo.FindUsersByField("email", "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	users, err = repo.FindUsersByField("email", "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = repo.FindUsersByField("shoeSize", "42")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMissingDocumentReadsAsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	anns, err := repo.ListAnnouncements()
	require.NoError(t, err)
	assert.Empty(t, anns)

	usr, err := repo.GetUser("admin")
	require.NoError(t, err)
	assert.Nil(t, usr)
}

func TestMalformedDocumentReadsAsEmpty(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	anns, err := repo.ListAnnouncements()
	require.NoError(t, err)
	assert.Empty(t, anns)

	// The store stays writable: the next mutation rewrites the document.
	created, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)
	got, err := repo.GetAnnouncement(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestWriteFailurePropagatesStorageError(t *testing.T) {
	// Point the store at a path whose parent directory does not exist:
	// reads fall back to the empty database, writes must fail loudly.
	repo := NewJSONRecordRepo(filepath.Join(t.TempDir(), "missing", "db.json"))

	_, err := repo.CreateAnnouncement(validInsert())
	require.Error(t, err)
	var serr *StorageError
	assert.True(t, errors.As(err, &serr))
}

func TestDocumentRoundTripShape(t *testing.T) {
	repo, path := newTestRepo(t)

	_, err := repo.CreateAnnouncement(validInsert())
	require.NoError(t, err)
	_, err = repo.UpsertUser(models.UpsertUser{ID: "admin", Email: "admin@example.com"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "announcements")
	assert.Contains(t, doc, "users")
}

package announcement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"campusboard/database/repository"
	"campusboard/models"
	"campusboard/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	summary string
	err     error
	calls   int
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.calls++
	return s.summary, s.err
}

func newTestService(t *testing.T, summarizer intelligence.Summarizer) (*DefaultAnnouncementService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return &DefaultAnnouncementService{
		Repo:       repository.NewJSONRecordRepo(path),
		Summarizer: summarizer,
	}, path
}

func longContent() string {
	return strings.Repeat("The library opens at eight. ", 10)
}

func validInput() models.InsertAnnouncement {
	return models.InsertAnnouncement{
		Title:      "Exam Schedule",
		Content:    "Final exams run from June 10 to June 21.",
		Category:   models.CategoryAcademic,
		AuthorID:   "admin",
		AuthorName: "Admin",
	}
}

func TestCreateAttachesSummaryForLongContent(t *testing.T) {
	summarizer := &stubSummarizer{summary: "Library opens at eight."}
	svc, _ := newTestService(t, summarizer)

	input := validInput()
	input.Content = longContent()

	ann, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Library opens at eight.", ann.Summary)
	assert.Equal(t, 1, summarizer.calls)
}

func TestCreateSkipsSummaryForShortContent(t *testing.T) {
	summarizer := &stubSummarizer{summary: "unused"}
	svc, _ := newTestService(t, summarizer)

	ann, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Empty(t, ann.Summary)
	assert.Zero(t, summarizer.calls)
}

func TestCreateSurvivesSummarizerFailure(t *testing.T) {
	summarizer := &stubSummarizer{err: errors.New("model timed out")}
	svc, _ := newTestService(t, summarizer)

	input := validInput()
	input.Content = longContent()

	ann, err := svc.Create(context.Background(), input)
	require.NoError(t, err, "summarizer failures must not abort creation")
	assert.Empty(t, ann.Summary)
}

func TestCreateValidationRejectsBeforeStorage(t *testing.T) {
	svc, path := newTestService(t, nil)

	cases := map[string]models.InsertAnnouncement{
		"empty title":      {Content: "x", Category: models.CategoryGeneral},
		"blank title":      {Title: "   ", Content: "x", Category: models.CategoryGeneral},
		"oversized title":  {Title: strings.Repeat("a", 201), Content: "x", Category: models.CategoryGeneral},
		"empty content":    {Title: "t", Category: models.CategoryGeneral},
		"unknown category": {Title: "t", Content: "x", Category: "Sports"},
	}
	for name, input := range cases {
		_, err := svc.Create(context.Background(), input)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), name)
	}

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "rejected input must never reach the store")
}

func TestCreateRejectsInvertedEventRange(t *testing.T) {
	svc, _ := newTestService(t, nil)

	start := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	input := validInput()
	input.EventStartDate = &start
	input.EventEndDate = &end

	_, err := svc.Create(context.Background(), input)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestUpdateRegeneratesSummaryWhenContentChanges(t *testing.T) {
	summarizer := &stubSummarizer{summary: "fresh summary"}
	svc, _ := newTestService(t, summarizer)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	content := longContent()
	updated, err := svc.Update(context.Background(), created.ID, models.AnnouncementPatch{Content: &content})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "fresh summary", updated.Summary)
}

func TestUpdateValidatesProvidedFields(t *testing.T) {
	svc, _ := newTestService(t, nil)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), created.ID, models.AnnouncementPatch{Title: &empty})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	bad := "Sports"
	_, err = svc.Update(context.Background(), created.ID, models.AnnouncementPatch{Category: &bad})
	assert.True(t, errors.As(err, &verr))
}

func TestUpdateAbsentReturnsNil(t *testing.T) {
	svc, _ := newTestService(t, nil)

	title := "x"
	updated, err := svc.Update(context.Background(), "no-such-id", models.AnnouncementPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestSummarizeRequiresMinimumLength(t *testing.T) {
	svc, _ := newTestService(t, &stubSummarizer{summary: "s"})

	_, err := svc.Summarize(context.Background(), "too short")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSummarizeUnavailableWithoutSummarizer(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Summarize(context.Background(), strings.Repeat("words ", 20))
	assert.ErrorIs(t, err, intelligence.ErrUnavailable)
}

func TestSummarizeDelegates(t *testing.T) {
	svc, _ := newTestService(t, &stubSummarizer{summary: "short version"})

	summary, err := svc.Summarize(context.Background(), strings.Repeat("words ", 20))
	require.NoError(t, err)
	assert.Equal(t, "short version", summary)
}

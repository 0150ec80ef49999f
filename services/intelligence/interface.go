package intelligence

import (
	"context"
	"errors"
)

// ErrUnavailable signals that no summary could be produced. It is a
// first-class outcome, not a failure: callers proceed without a summary.
var ErrUnavailable = errors.New("summarization unavailable")

// Content shorter than this is not worth auto-summarizing; the explicit
// summarize endpoint has a lower bar.
const (
	AutoSummaryMinChars = 200
	SummaryMinChars     = 50
)

// Summarizer condenses announcement text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const summarizePrompt = "Summarize this announcement into concise key points. " +
	"Keep the summary under 150 characters and focus on the most important information.\n\n"

// geminiTimeout bounds every model call; the summarizer must never block
// an announcement mutation indefinitely.
const geminiTimeout = 15 * time.Second

// GeminiSummarizer produces summaries with the Gemini API.
type GeminiSummarizer struct {
	model *genai.GenerativeModel
}

// NewGeminiSummarizer builds a summarizer from an API key. An empty key
// returns (nil, ErrUnavailable) so the caller can run without summaries.
func NewGeminiSummarizer(ctx context.Context, apiKey string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiSummarizer{model: model}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(summarizePrompt+text))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrUnavailable
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", ErrUnavailable
	}
	return summary, nil
}

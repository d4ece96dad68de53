// Package service provides the AI summarization client used by the
// document-processing worker.
package service

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docbrief/docbrief/internal/jobs/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

const systemPrompt = `You are a study assistant. Given a document, respond with a JSON object:
{"summary": "...", "key_insights": "...", "flashcards": [{"q": "...", "a": "..."}]}
summary is a thorough prose summary, key_insights is a bullet list of key takeaways,
and flashcards holds question/answer study prompts. Respond with JSON only.`

// Summary is the structured output of one summarization run.
type Summary struct {
	Summary     string
	KeyInsights string
	Flashcards  []domain.Flashcard
	ModelUsed   string
}

// Summarizer produces summaries, key insights, and flashcards from document text.
type Summarizer interface {
	Summarize(ctx context.Context, documentText, model, apiKey string) (*Summary, error)
}

// OpenAISummarizer implements Summarizer against an OpenAI-compatible
// chat-completions API. BaseURL points at OpenRouter by default.
type OpenAISummarizer struct {
	baseURL string
}

// NewOpenAISummarizer creates a new OpenAISummarizer
func NewOpenAISummarizer(baseURL string) *OpenAISummarizer {
	return &OpenAISummarizer{
		baseURL: baseURL,
	}
}

// summaryPayload matches the JSON shape the model is instructed to return.
type summaryPayload struct {
	Summary     string             `json:"summary"`
	KeyInsights string             `json:"key_insights"`
	Flashcards  []domain.Flashcard `json:"flashcards"`
}

// Summarize sends the document text to the configured model and parses the
// structured response. The API key comes from a decrypted credential and is
// used for this request only.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	documentText, model, apiKey string,
) (*Summary, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document text is empty")
	}

	config := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		config.BaseURL = s.baseURL
	}
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: documentText},
			},
		},
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "chat completion request failed")
	}

	if len(resp.Choices) == 0 {
		return nil, apperrors.New("chat completion returned no choices")
	}

	payload, err := parseSummaryPayload(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Summary:     payload.Summary,
		KeyInsights: payload.KeyInsights,
		Flashcards:  payload.Flashcards,
		ModelUsed:   model,
	}, nil
}

// parseSummaryPayload decodes the model output, tolerating markdown code fences.
func parseSummaryPayload(content string) (*summaryPayload, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload summaryPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse model response")
	}
	return &payload, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"vidbrief-backend/internal/models"
)

const systemPrompt = "You are a helpful assistant that summarizes YouTube video content. " +
	"Format your response as JSON with the following structure: { " +
	"briefSummary: string, detailedSummary: string, keyPoints: string[], " +
	"timestamps: { time: string, text: string }[], mainTakeaways: string[] }"

const truncationMarker = "\n[Transcript was truncated due to length]"

// chatCompleter is the slice of the OpenAI client the summarizer needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Summarizer turns a transcript into a structured summary through an
// OpenAI-compatible chat completion endpoint.
type Summarizer struct {
	client              chatCompleter
	model               string
	maxTranscriptTokens int
	maxSummaryTokens    int
}

func NewSummarizer(apiKey, baseURL, model string, maxTranscriptTokens, maxSummaryTokens int) *Summarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	// OpenRouter attribution headers ride on every request.
	cfg.HTTPClient = &http.Client{
		Transport: attributionTransport{base: http.DefaultTransport},
	}

	return &Summarizer{
		client:              openai.NewClientWithConfig(cfg),
		model:               model,
		maxTranscriptTokens: maxTranscriptTokens,
		maxSummaryTokens:    maxSummaryTokens,
	}
}

// GenerateSummary truncates oversized transcripts, builds the
// instruction prompt from the user's options and requests a structured
// JSON summary. Returns ErrContextTooLong when the provider rejects the
// request for context length.
func (s *Summarizer) GenerateSummary(ctx context.Context, transcript string, opts models.SummaryOptions) (*models.SummaryResult, error) {
	processed := truncateTranscript(transcript, s.maxTranscriptTokens)
	instructions := buildInstructions(opts)

	log.Println("Generating summary...")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\nTranscript: %s", instructions, processed)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
		MaxTokens:   s.maxSummaryTokens,
	})
	if err != nil {
		if isContextLengthError(err) {
			return nil, fmt.Errorf("%w: %v", ErrContextTooLong, err)
		}
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("summary response contained no choices")
	}

	var result models.SummaryResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}

	return &result, nil
}

// estimateTokens approximates the provider's tokenizer as one token per
// four characters. Best-effort sizing, not exact counting.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// truncateTranscript caps the transcript at the token budget and
// appends a marker so the model knows the tail is missing.
func truncateTranscript(transcript string, maxTokens int) string {
	if estimateTokens(transcript) <= maxTokens {
		return transcript
	}
	return transcript[:maxTokens*4] + truncationMarker
}

// buildInstructions assembles the instruction clauses in a fixed order;
// a disabled focus area simply omits its clause.
func buildInstructions(opts models.SummaryOptions) string {
	lengthWord := "briefly"
	if opts.Length == "detailed" {
		lengthWord = "in detail"
	}

	clauses := []string{
		fmt.Sprintf("Summarize the following YouTube video transcript %s.", lengthWord),
	}
	if opts.FocusAreas.KeyPoints {
		clauses = append(clauses, "Include key points.")
	}
	if opts.FocusAreas.Timestamps {
		clauses = append(clauses, "Include important timestamps with descriptions.")
	}
	if opts.FocusAreas.Takeaways {
		clauses = append(clauses, "Include main takeaways.")
	}

	return strings.Join(clauses, " ")
}

// isContextLengthError recognizes the provider's context-length
// violation so it is tagged once, at this boundary.
func isContextLengthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == "context_length_exceeded" {
			return true
		}
	}
	return strings.Contains(err.Error(), "context_length_exceeded")
}

// attributionTransport adds the optional OpenRouter attribution headers
// without touching the caller's request.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("HTTP-Referer", "http://localhost:3000")
	clone.Header.Set("X-Title", "Video-Trans")
	return t.base.RoundTrip(clone)
}

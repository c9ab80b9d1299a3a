package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"vidbrief-backend/internal/models"
)

type fakeChatCompleter struct {
	calls    int
	lastReq  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (f *fakeChatCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 48000), 12000},
		{strings.Repeat("x", 48001), 12001},
	}

	for _, tc := range tests {
		if got := estimateTokens(tc.text); got != tc.want {
			t.Errorf("estimateTokens(len %d) = %d, want %d", len(tc.text), got, tc.want)
		}
	}
}

func TestTruncateTranscript(t *testing.T) {
	t.Run("short transcript passes through", func(t *testing.T) {
		in := strings.Repeat("a", 48000)
		if got := truncateTranscript(in, 12000); got != in {
			t.Error("Transcript at the budget should not be truncated")
		}
	})

	t.Run("oversized transcript is cut to budget plus marker", func(t *testing.T) {
		in := strings.Repeat("a", 48001)
		got := truncateTranscript(in, 12000)

		if !strings.HasSuffix(got, truncationMarker) {
			t.Fatal("Expected truncation marker at the end")
		}
		body := strings.TrimSuffix(got, truncationMarker)
		if len(body) != 12000*4 {
			t.Errorf("Expected exactly %d kept characters, got %d", 12000*4, len(body))
		}
	})
}

func TestBuildInstructions(t *testing.T) {
	tests := []struct {
		name string
		opts models.SummaryOptions
		want string
	}{
		{
			"brief with no focus areas",
			models.SummaryOptions{Length: "brief"},
			"Summarize the following YouTube video transcript briefly.",
		},
		{
			"empty length defaults to brief",
			models.SummaryOptions{},
			"Summarize the following YouTube video transcript briefly.",
		},
		{
			"detailed with all focus areas",
			models.SummaryOptions{
				Length:     "detailed",
				FocusAreas: models.FocusAreas{KeyPoints: true, Timestamps: true, Takeaways: true},
			},
			"Summarize the following YouTube video transcript in detail. " +
				"Include key points. Include important timestamps with descriptions. Include main takeaways.",
		},
		{
			"omitted areas keep clause order",
			models.SummaryOptions{
				Length:     "brief",
				FocusAreas: models.FocusAreas{KeyPoints: true, Takeaways: true},
			},
			"Summarize the following YouTube video transcript briefly. " +
				"Include key points. Include main takeaways.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildInstructions(tc.opts); got != tc.want {
				t.Errorf("buildInstructions = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateSummary(t *testing.T) {
	fake := &fakeChatCompleter{
		response: chatResponse(`{
			"briefSummary": "short",
			"detailedSummary": "long",
			"keyPoints": ["a", "b"],
			"timestamps": [{"time": "0:42", "text": "intro"}],
			"mainTakeaways": ["c"]
		}`),
	}
	s := &Summarizer{client: fake, model: "gpt-3.5-turbo", maxTranscriptTokens: 12000, maxSummaryTokens: 2000}

	opts := models.SummaryOptions{
		Length:     "brief",
		FocusAreas: models.FocusAreas{KeyPoints: true},
	}
	result, err := s.GenerateSummary(context.Background(), "hello world", opts)
	if err != nil {
		t.Fatalf("GenerateSummary returned error: %v", err)
	}

	if result.BriefSummary != "short" || result.DetailedSummary != "long" {
		t.Errorf("Unexpected summaries: %+v", result)
	}
	if len(result.KeyPoints) != 2 || len(result.Timestamps) != 1 || len(result.MainTakeaways) != 1 {
		t.Errorf("Unexpected list lengths: %+v", result)
	}
	if result.Timestamps[0].Time != "0:42" {
		t.Errorf("Unexpected timestamp: %+v", result.Timestamps[0])
	}

	req := fake.lastReq
	if req.Model != "gpt-3.5-turbo" {
		t.Errorf("Unexpected model %q", req.Model)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Error("Expected JSON object response format")
	}
	if req.Temperature != 0.3 {
		t.Errorf("Expected temperature 0.3, got %v", req.Temperature)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("Expected max tokens 2000, got %d", req.MaxTokens)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("Expected system message first, got role %q", req.Messages[0].Role)
	}
	user := req.Messages[1]
	if user.Role != openai.ChatMessageRoleUser {
		t.Errorf("Expected user message second, got role %q", user.Role)
	}
	if !strings.Contains(user.Content, "Include key points.") {
		t.Error("Expected key points clause in the user message")
	}
	if !strings.Contains(user.Content, "Transcript: hello world") {
		t.Error("Expected transcript in the user message")
	}
}

func TestGenerateSummary_TruncatesOversizedTranscript(t *testing.T) {
	fake := &fakeChatCompleter{response: chatResponse(`{"briefSummary":"ok"}`)}
	s := &Summarizer{client: fake, model: "gpt-3.5-turbo", maxTranscriptTokens: 100, maxSummaryTokens: 2000}

	transcript := strings.Repeat("x", 100*4+500)
	if _, err := s.GenerateSummary(context.Background(), transcript, models.SummaryOptions{}); err != nil {
		t.Fatalf("GenerateSummary returned error: %v", err)
	}

	if !strings.Contains(fake.lastReq.Messages[1].Content, truncationMarker) {
		t.Error("Expected truncation marker in the outgoing prompt")
	}
}

func TestGenerateSummary_ContextLengthError(t *testing.T) {
	fake := &fakeChatCompleter{
		err: &openai.APIError{
			Code:           "context_length_exceeded",
			Message:        "This model's maximum context length is 16385 tokens",
			HTTPStatusCode: 400,
		},
	}
	s := &Summarizer{client: fake, model: "gpt-3.5-turbo", maxTranscriptTokens: 12000, maxSummaryTokens: 2000}

	_, err := s.GenerateSummary(context.Background(), "hello", models.SummaryOptions{})
	if !errors.Is(err, ErrContextTooLong) {
		t.Errorf("Expected ErrContextTooLong, got %v", err)
	}
}

func TestGenerateSummary_GenericProviderError(t *testing.T) {
	fake := &fakeChatCompleter{err: errors.New("upstream exploded")}
	s := &Summarizer{client: fake, model: "gpt-3.5-turbo", maxTranscriptTokens: 12000, maxSummaryTokens: 2000}

	_, err := s.GenerateSummary(context.Background(), "hello", models.SummaryOptions{})
	if err == nil {
		t.Fatal("Expected error")
	}
	if errors.Is(err, ErrContextTooLong) {
		t.Error("Generic failure must not be classified as context-too-long")
	}
}

func TestGenerateSummary_MalformedJSON(t *testing.T) {
	fake := &fakeChatCompleter{response: chatResponse("this is not json")}
	s := &Summarizer{client: fake, model: "gpt-3.5-turbo", maxTranscriptTokens: 12000, maxSummaryTokens: 2000}

	if _, err := s.GenerateSummary(context.Background(), "hello", models.SummaryOptions{}); err == nil {
		t.Fatal("Expected parse error for non-JSON model output")
	}
}

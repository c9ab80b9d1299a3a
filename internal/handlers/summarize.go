package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"

	"vidbrief-backend/internal/models"
	"vidbrief-backend/internal/services"
)

// Collaborators are injected as interfaces so tests can substitute
// fakes for the external providers.
type metadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*models.VideoMetadata, error)
}

type transcriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

type summaryGenerator interface {
	GenerateSummary(ctx context.Context, transcript string, opts models.SummaryOptions) (*models.SummaryResult, error)
}

type SummarizeHandler struct {
	metadata    metadataFetcher
	transcripts transcriptFetcher
	summarizer  summaryGenerator
}

func NewSummarizeHandler(metadata metadataFetcher, transcripts transcriptFetcher, summarizer summaryGenerator) *SummarizeHandler {
	return &SummarizeHandler{
		metadata:    metadata,
		transcripts: transcripts,
		summarizer:  summarizer,
	}
}

// Summarize runs the pipeline: validate URL, fetch metadata, fetch
// transcript, generate summary. Stages run sequentially and the first
// failure short-circuits the rest.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "URL is required"})
		return
	}

	videoID, ok := services.ExtractVideoID(req.URL)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid YouTube URL. Please provide a valid YouTube video URL.",
		})
		return
	}

	ctx := r.Context()

	// Metadata first, then transcript. Kept sequential on purpose: the
	// order decides which error surfaces when a video fails both.
	metadata, err := h.metadata.FetchMetadata(ctx, videoID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	log.Printf("Fetching transcript for video: %s", videoID)
	transcript, err := h.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	log.Printf("Transcript length: %d characters", len(transcript))

	opts := models.SummaryOptions{Length: "brief"}
	if req.Options != nil {
		opts = *req.Options
	}

	summary, err := h.summarizer.GenerateSummary(ctx, transcript, opts)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummarizeResponse{
		Success:  true,
		Metadata: metadata,
		Summary:  summary,
	})
}

// writeFailure maps tagged pipeline failures to user-facing responses.
func (h *SummarizeHandler) writeFailure(w http.ResponseWriter, err error) {
	log.Printf("Error processing video: %v", err)

	switch {
	case errors.Is(err, services.ErrNoTranscript):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: "This video does not have captions available. Please try a different video with captions enabled.",
		})
	case errors.Is(err, services.ErrContextTooLong):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: "This video is too long to process. Please try a shorter video (under 30 minutes).",
		})
	case errors.Is(err, services.ErrVideoNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Video not found"})
	default:
		msg := err.Error()
		if msg == "" {
			msg = "An unexpected error occurred while processing your request"
		}
		writeJSON(w, statusFromError(err), models.ErrorResponse{Error: msg})
	}
}

// statusFromError surfaces a provider-reported HTTP status when one is
// attached to the error chain.
func statusFromError(err error) int {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code >= http.StatusBadRequest {
		return gErr.Code
	}

	var aErr *openai.APIError
	if errors.As(err, &aErr) && aErr.HTTPStatusCode >= http.StatusBadRequest {
		return aErr.HTTPStatusCode
	}

	var rErr *openai.RequestError
	if errors.As(err, &rErr) && rErr.HTTPStatusCode >= http.StatusBadRequest {
		return rErr.HTTPStatusCode
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

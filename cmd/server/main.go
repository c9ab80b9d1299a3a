package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidbrief-backend/internal/config"
	"vidbrief-backend/internal/handlers"
	"vidbrief-backend/internal/router"
	"vidbrief-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting VidBrief Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize External Clients ────
	metadataService, err := services.NewMetadataService(context.Background(), cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("✗ YouTube Data API client initialization failed: %v", err)
	}
	log.Println("✓ YouTube Data API client initialized")

	transcriptService := services.NewTranscriptService()

	summarizer := services.NewSummarizer(
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterBaseURL,
		cfg.SummaryModel,
		cfg.MaxTranscriptTokens,
		cfg.MaxSummaryTokens,
	)
	log.Printf("✓ Summarizer initialized (model %s)", cfg.SummaryModel)

	// ──── Step 3: Initialize Handler & Router ────
	summarizeHandler := handlers.NewSummarizeHandler(metadataService, transcriptService, summarizer)
	r := router.New(summarizeHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Summarize requests block on upstream providers; the write
		// window has to cover the whole pipeline.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ VidBrief Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/summarize", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

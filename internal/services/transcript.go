package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
)

// TranscriptService fetches caption segments and flattens them into a
// single text blob for summarization.
type TranscriptService struct {
	httpClient *http.Client
	api        *ytapi.YouTubeTranscriptApi
}

type captionListXML struct {
	XMLName xml.Name     `xml:"transcript"`
	Lines   []captionXML `xml:"text"`
}

type captionXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func NewTranscriptService() *TranscriptService {
	return &TranscriptService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		api:        ytapi.NewYouTubeTranscriptApi(),
	}
}

// FetchTranscript returns the video's caption texts joined with single
// spaces, in temporal order. English tracks are preferred, then any
// available language, then a timedtext page scrape. Returns
// ErrNoTranscript when no path yields usable captions.
func (s *TranscriptService) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	transcript, err := s.api.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		transcript, err = s.api.GetTranscript(videoID, nil)
		if err != nil {
			text, fallbackErr := s.fetchViaTimedText(ctx, videoID)
			if fallbackErr != nil {
				log.Printf("timedtext fallback failed for %s: %v", videoID, fallbackErr)
				return "", fmt.Errorf("%w: %v", ErrNoTranscript, err)
			}
			return text, nil
		}
	}

	segments := make([]string, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		segments = append(segments, entry.Text)
	}

	text := joinSegments(segments)
	if text == "" {
		return "", ErrNoTranscript
	}

	return text, nil
}

// joinSegments concatenates caption segment texts with single-space
// separators, skipping blank segments. Segment timing is deliberately
// not carried into the joined text.
func joinSegments(segments []string) string {
	var b strings.Builder
	for _, seg := range segments {
		t := strings.TrimSpace(seg)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(t)
	}
	return b.String()
}

func (s *TranscriptService) fetchViaTimedText(ctx context.Context, videoID string) (string, error) {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return "", err
	}

	creq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return "", err
	}
	captionResp, err := s.httpClient.Do(creq)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer captionResp.Body.Close()

	captionBody, err := io.ReadAll(captionResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read captions: %w", err)
	}

	text, err := parseCaptionsXML(captionBody)
	if err != nil {
		return "", fmt.Errorf("failed to parse captions XML: %w", err)
	}

	return text, nil
}

var (
	captionTracksRegex       = regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionTracksNestedRegex = regexp.MustCompile(`"playerCaptionsTracklistRenderer"\s*:\s*\{(?:.*?,)?\s*"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionBaseURLRegex      = regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
)

func extractCaptionURL(pageHTML string) (string, error) {
	matches := captionTracksRegex.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		matches = captionTracksNestedRegex.FindStringSubmatch(pageHTML)
		if len(matches) < 2 {
			return "", fmt.Errorf("no captions available for this video")
		}
	}

	urlMatches := captionBaseURLRegex.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")

	return u, nil
}

func parseCaptionsXML(data []byte) (string, error) {
	var list captionListXML
	if err := xml.Unmarshal(data, &list); err != nil {
		return "", err
	}

	segments := make([]string, 0, len(list.Lines))
	for _, line := range list.Lines {
		segments = append(segments, html.UnescapeString(line.Text))
	}

	text := joinSegments(segments)
	if text == "" {
		return "", fmt.Errorf("captions XML empty")
	}

	return text, nil
}

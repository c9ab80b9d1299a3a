package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"vidbrief-backend/internal/models"
)

// MetadataService reads video details from the YouTube Data API.
type MetadataService struct {
	yt *youtube.Service
}

func NewMetadataService(ctx context.Context, apiKey string) (*MetadataService, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Data API client: %w", err)
	}
	return &MetadataService{yt: svc}, nil
}

// FetchMetadata loads snippet, content details and statistics for one
// video and reshapes them for the client. Returns ErrVideoNotFound when
// the API reports zero items.
func (s *MetadataService) FetchMetadata(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	resp, err := s.yt.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := resp.Items[0]

	md := &models.VideoMetadata{
		Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
	}
	if item.Snippet != nil {
		md.Title = item.Snippet.Title
		md.ChannelTitle = item.Snippet.ChannelTitle
		md.PublishedAt = item.Snippet.PublishedAt
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			md.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
	}
	if item.ContentDetails != nil {
		md.Duration = FormatDuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		md.ViewCount = item.Statistics.ViewCount
	}

	return md, nil
}

// FormatDuration renders an ISO-8601 duration (PT#H#M#S) as a compact
// human string by literal token substitution ("PT3M33S" -> "3m 33s").
// This is the display transform the client expects, not a duration
// parser; it assumes a well-formed single-video duration where each
// token appears at most once.
func FormatDuration(iso string) string {
	d := strings.Replace(iso, "PT", "", 1)
	d = strings.Replace(d, "H", "h ", 1)
	d = strings.Replace(d, "M", "m ", 1)
	d = strings.Replace(d, "S", "s", 1)
	return d
}

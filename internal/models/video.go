package models

// VideoMetadata is the reshaped videos.list response for one video.
// Duration is a pre-rendered human string ("3m 33s"), not ISO-8601.
type VideoMetadata struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
	Duration     string `json:"duration"`
	ViewCount    uint64 `json:"viewCount"`
}

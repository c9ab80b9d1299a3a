package services

import "errors"

// Tagged failures produced by the collaborators. The HTTP layer maps
// these once with errors.Is instead of re-matching provider message
// text at every call site.
var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrNoTranscript   = errors.New("no transcript available")
	ErrContextTooLong = errors.New("transcript exceeds model context")
)

package models

type SummarizeRequest struct {
	URL     string          `json:"url"`
	Options *SummaryOptions `json:"options,omitempty"`
}

type SummarizeResponse struct {
	Success  bool           `json:"success"`
	Metadata *VideoMetadata `json:"metadata"`
	Summary  *SummaryResult `json:"summary"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

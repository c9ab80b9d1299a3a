package models

// FocusAreas selects which optional sections are requested from the
// model and which sections the client renders.
type FocusAreas struct {
	KeyPoints  bool `json:"keyPoints"`
	Timestamps bool `json:"timestamps"`
	Takeaways  bool `json:"takeaways"`
}

type SummaryOptions struct {
	Length     string     `json:"length"` // "brief" | "detailed"
	FocusAreas FocusAreas `json:"focusAreas"`
}

type TimestampEntry struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// SummaryResult is the structured payload the model is instructed to
// return. It is passed through to the client verbatim.
type SummaryResult struct {
	BriefSummary    string           `json:"briefSummary"`
	DetailedSummary string           `json:"detailedSummary"`
	KeyPoints       []string         `json:"keyPoints"`
	Timestamps      []TimestampEntry `json:"timestamps"`
	MainTakeaways   []string         `json:"mainTakeaways"`
}

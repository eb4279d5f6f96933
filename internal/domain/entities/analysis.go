package entities

// TranscriptEntry is one speaker turn in the transcript. Entries are kept in
// the chronological order produced by the model; order is significant.
type TranscriptEntry struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // HH:MM:SS
}

// KeyPoint is a key point or decision from the meeting summary
type KeyPoint struct {
	Point     string `json:"point"`
	Timestamp string `json:"timestamp"` // HH:MM:SS
}

// ActionItem is a task extracted from the meeting with its responsible party
type ActionItem struct {
	Action      string `json:"action"`
	Responsible string `json:"responsible"`
	Timestamp   string `json:"timestamp"` // HH:MM:SS
}

// MeetingSummary holds the structured summary of one analysis
type MeetingSummary struct {
	KeyPoints   []KeyPoint   `json:"key_points"`
	ActionItems []ActionItem `json:"action_items"`
}

// FullAnalysis is the complete result of one analysis request: summary plus
// full transcript. It is produced once per request and never mutated.
type FullAnalysis struct {
	Summary    MeetingSummary    `json:"summary"`
	Transcript []TranscriptEntry `json:"transcript"`
}

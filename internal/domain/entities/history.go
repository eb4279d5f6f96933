package entities

import "time"

// AnalysisSource tells whether an analysis came from a live capture session
// or from an uploaded file
type AnalysisSource string

const (
	AnalysisSourceLive   AnalysisSource = "live"
	AnalysisSourceUpload AnalysisSource = "upload"
)

// HistoryItem is one completed analysis kept in the history list.
// Items are immutable after creation; the list is most-recent-first.
type HistoryItem struct {
	ID       int64          `json:"id"` // creation time in unix millis, monotonic per session
	Title    string         `json:"title"`
	Date     string         `json:"date"` // ISO-8601
	Analysis FullAnalysis   `json:"analysis"`
	Source   AnalysisSource `json:"source"`
}

// NewHistoryItem creates a history item for a finished analysis
func NewHistoryItem(title string, analysis FullAnalysis, source AnalysisSource, now time.Time) HistoryItem {
	return HistoryItem{
		ID:       now.UnixMilli(),
		Title:    title,
		Date:     now.UTC().Format(time.RFC3339),
		Analysis: analysis,
		Source:   source,
	}
}

// Package transcript normalizes raw transcripts for presentation and export.
package transcript

import (
	"strings"

	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

// Group merges consecutive entries by the same speaker into a single entry.
// Texts inside a run are joined with a single newline and the run keeps the
// timestamp of its first entry. The input is never modified; grouping is a
// pure function of it and is idempotent.
func Group(entries []entities.TranscriptEntry) []entities.TranscriptEntry {
	if len(entries) == 0 {
		return []entities.TranscriptEntry{}
	}

	grouped := make([]entities.TranscriptEntry, 0, len(entries))
	current := entries[0]

	for _, entry := range entries[1:] {
		if entry.Speaker == current.Speaker {
			current.Text += "\n" + entry.Text
			continue
		}
		grouped = append(grouped, current)
		current = entry
	}
	grouped = append(grouped, current)

	return grouped
}

// JoinedText concatenates the text of all entries without separators.
// Useful for comparing content across grouping.
func JoinedText(entries []entities.TranscriptEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		for _, line := range strings.Split(entry.Text, "\n") {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

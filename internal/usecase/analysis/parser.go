package analysis

import (
	"encoding/json"
	"strings"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

// Parser handles parsing of model reply text into a FullAnalysis
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the model's JSON reply into a FullAnalysis. The model might
// wrap the document in markdown code fences even with a JSON response type
// requested, so fences are stripped first.
func (p *Parser) Parse(reply string) (*entities.FullAnalysis, error) {
	raw := extractJSON(reply)

	var result entities.FullAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, apperrors.ErrMalformedResponse(err, reply)
	}

	if err := validateAnalysis(&result); err != nil {
		return nil, apperrors.ErrMalformedResponse(err, reply)
	}

	return &result, nil
}

// validateAnalysis checks the structural fields the rest of the pipeline
// relies on. A summary must be present even when empty, and every transcript
// entry needs a speaker and text.
func validateAnalysis(a *entities.FullAnalysis) error {
	if a.Summary.KeyPoints == nil && a.Summary.ActionItems == nil && len(a.Transcript) == 0 {
		return errMissingFields("summary", "transcript")
	}
	for _, entry := range a.Transcript {
		if entry.Speaker == "" || entry.Text == "" {
			return errMissingFields("transcript.speaker", "transcript.text")
		}
	}
	for _, kp := range a.Summary.KeyPoints {
		if kp.Point == "" {
			return errMissingFields("summary.key_points.point")
		}
	}
	for _, item := range a.Summary.ActionItems {
		if item.Action == "" {
			return errMissingFields("summary.action_items.action")
		}
	}
	return nil
}

type missingFieldsError struct {
	fields []string
}

func (e missingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.fields, ", ")
}

func errMissingFields(fields ...string) error {
	return missingFieldsError{fields: fields}
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

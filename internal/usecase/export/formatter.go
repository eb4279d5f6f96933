// Package export renders a finished analysis as downloadable documents.
package export

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
	"github.com/dbmarquetti/notas-magicas/internal/usecase/transcript"
)

// FilePrefix is the common prefix of exported file names
const FilePrefix = "notas-magicas"

// ToPlainText renders the analysis as the plain-text document offered for
// download. The transcript is grouped by speaker runs before rendering.
func ToPlainText(analysis *entities.FullAnalysis, title string, now time.Time) (string, error) {
	if analysis == nil {
		return "", apperrors.ErrInvalidArgument("nenhuma análise disponível para exportar")
	}

	grouped := transcript.Group(analysis.Transcript)

	var b strings.Builder
	fmt.Fprintf(&b, "Notas Mágicas - %s\n", title)
	b.WriteString("===================================================\n")
	fmt.Fprintf(&b, "Data: %s\n\n", now.Format("02/01/2006"))

	b.WriteString("--- RESUMO ---\n\n")
	b.WriteString("**Pontos Chave:**\n")
	for _, kp := range analysis.Summary.KeyPoints {
		fmt.Fprintf(&b, "- %s\n", kp.Point)
	}
	b.WriteString("\n**Ações e Responsáveis:**\n")
	for _, item := range analysis.Summary.ActionItems {
		fmt.Fprintf(&b, "- %s (Responsável: %s)\n", item.Action, item.Responsible)
	}

	b.WriteString("\n--- TRANSCRIÇÃO COMPLETA ---\n")
	for _, entry := range grouped {
		fmt.Fprintf(&b, "\n[%s] %s:\n%s\n", entry.Timestamp, entry.Speaker, entry.Text)
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

// ToMarkdown renders the analysis as a Markdown document. Each transcript
// entry's text is blockquoted line by line, including the newlines that
// grouping inserted.
func ToMarkdown(analysis *entities.FullAnalysis, title string, now time.Time) (string, error) {
	if analysis == nil {
		return "", apperrors.ErrInvalidArgument("nenhuma análise disponível para exportar")
	}

	grouped := transcript.Group(analysis.Transcript)

	var b strings.Builder
	fmt.Fprintf(&b, "# Notas Mágicas - %s\n\n", title)
	fmt.Fprintf(&b, "**Data:** %s\n\n", now.Format("02/01/2006"))
	b.WriteString("---\n\n")

	b.WriteString("## Resumo\n\n")
	b.WriteString("### Pontos Chave:\n")
	for _, kp := range analysis.Summary.KeyPoints {
		fmt.Fprintf(&b, "- %s\n", kp.Point)
	}
	b.WriteString("\n### Ações e Responsáveis:\n")
	for _, item := range analysis.Summary.ActionItems {
		fmt.Fprintf(&b, "- **%s** (Responsável: %s)\n", item.Action, item.Responsible)
	}

	b.WriteString("\n---\n\n")
	b.WriteString("## Transcrição Completa\n")
	for _, entry := range grouped {
		quoted := "> " + strings.ReplaceAll(entry.Text, "\n", "\n> ")
		fmt.Fprintf(&b, "\n**[%s] %s:**\n%s\n", entry.Timestamp, entry.Speaker, quoted)
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

// FileName builds the download name <prefix>-<slug>-<ISO date>.<ext>
func FileName(slug, ext string, date time.Time) string {
	return fmt.Sprintf("%s-%s-%s.%s", FilePrefix, Slug(slug), date.Format("2006-01-02"), ext)
}

// Slug reduces a title (typically an uploaded file name) to a safe file-name
// fragment: the part before the first dot, with separators collapsed.
func Slug(title string) string {
	if idx := strings.IndexByte(title, '.'); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "analise"
	}

	var sb strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" {
		return "analise"
	}
	return out
}

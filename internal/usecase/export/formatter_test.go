package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

var testDate = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func sampleAnalysis() *entities.FullAnalysis {
	return &entities.FullAnalysis{
		Summary: entities.MeetingSummary{
			KeyPoints: []entities.KeyPoint{
				{Point: "Orçamento aprovado", Timestamp: "00:02:10"},
				{Point: "Lançamento adiado para abril", Timestamp: "00:15:40"},
			},
			ActionItems: []entities.ActionItem{
				{Action: "Enviar relatório", Responsible: "Maria", Timestamp: "00:20:05"},
			},
		},
		Transcript: []entities.TranscriptEntry{
			{Speaker: "Locutor A", Text: "Bom dia a todos.", Timestamp: "00:00:01"},
			{Speaker: "Locutor A", Text: "Vamos começar.", Timestamp: "00:00:06"},
			{Speaker: "Locutor B", Text: "Perfeito.", Timestamp: "00:00:12"},
		},
	}
}

func TestToPlainText_Layout(t *testing.T) {
	out, err := ToPlainText(sampleAnalysis(), "Análise do Arquivo: reuniao.mp3", testDate)
	require.NoError(t, err)

	assert.Contains(t, out, "Notas Mágicas - Análise do Arquivo: reuniao.mp3")
	assert.Contains(t, out, "Data: 14/03/2025")
	assert.Contains(t, out, "--- RESUMO ---")
	assert.Contains(t, out, "- Orçamento aprovado")
	assert.Contains(t, out, "- Lançamento adiado para abril")
	assert.Contains(t, out, "- Enviar relatório (Responsável: Maria)")
	assert.Contains(t, out, "--- TRANSCRIÇÃO COMPLETA ---")

	// Grouped transcript: both Locutor A turns merged under one header.
	assert.Contains(t, out, "[00:00:01] Locutor A:\nBom dia a todos.\nVamos começar.")
	assert.Contains(t, out, "[00:00:12] Locutor B:\nPerfeito.")
}

func TestToMarkdown_Layout(t *testing.T) {
	out, err := ToMarkdown(sampleAnalysis(), "Análise do Arquivo: reuniao.mp3", testDate)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Notas Mágicas - Análise do Arquivo: reuniao.mp3"))
	assert.Contains(t, out, "**Data:** 14/03/2025")
	assert.Contains(t, out, "## Resumo")
	assert.Contains(t, out, "### Pontos Chave:")
	assert.Contains(t, out, "- **Enviar relatório** (Responsável: Maria)")
	assert.Contains(t, out, "## Transcrição Completa")
}

func TestToMarkdown_BlockquotesEveryGroupedLine(t *testing.T) {
	out, err := ToMarkdown(sampleAnalysis(), "Análise da Gravação", testDate)
	require.NoError(t, err)

	assert.Contains(t, out, "**[00:00:01] Locutor A:**\n> Bom dia a todos.\n> Vamos começar.")
}

func TestFormatters_EmptySummarySections(t *testing.T) {
	analysis := &entities.FullAnalysis{
		Transcript: []entities.TranscriptEntry{
			{Speaker: "Locutor A", Text: "Oi.", Timestamp: "00:00:01"},
		},
	}

	txt, err := ToPlainText(analysis, "Análise da Gravação", testDate)
	require.NoError(t, err)
	assert.Contains(t, txt, "**Pontos Chave:**")
	assert.Contains(t, txt, "**Ações e Responsáveis:**")

	md, err := ToMarkdown(analysis, "Análise da Gravação", testDate)
	require.NoError(t, err)
	assert.Contains(t, md, "### Pontos Chave:")
}

func TestFormatters_NilAnalysis(t *testing.T) {
	_, err := ToPlainText(nil, "x", testDate)
	assert.Error(t, err)

	_, err = ToMarkdown(nil, "x", testDate)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "notas-magicas-reuniao-2025-03-14.txt", FileName("reuniao.mp3", "txt", testDate))
	assert.Equal(t, "notas-magicas-live-2025-03-14.md", FileName("live", "md", testDate))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "reuniao", Slug("reuniao.mp3"))
	assert.Equal(t, "reuniao-semanal", Slug("reuniao semanal.wav"))
	assert.Equal(t, "reuni-o", Slug("reunião.wav"))
	assert.Equal(t, "analise", Slug(""))
	assert.Equal(t, "analise", Slug("...."))
}

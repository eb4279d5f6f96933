package ai

import "fmt"

const mediaAnalysisPrompt = `Você é um assistente especialista em atas de reunião. Analise o áudio ou vídeo fornecido e produza, em português do Brasil:
1. Uma transcrição completa com diarização de falantes (identifique cada falante como "Falante 1", "Falante 2", etc., ou pelo nome quando mencionado) e o timestamp de início de cada fala no formato MM:SS.
2. Um resumo com os pontos chave da reunião, cada um com o timestamp do momento em que foi discutido.
3. A lista de ações acordadas, cada uma com o responsável e o timestamp. Se nenhum responsável for mencionado, use "Não definido".
Responda estritamente no formato JSON solicitado.`

const transcriptAnalysisPromptFmt = `Você é um assistente especialista em atas de reunião. O texto abaixo é a transcrição bruta de uma reunião capturada ao vivo. Em português do Brasil:
1. Estruture a transcrição atribuindo falantes (identifique cada falante como "Falante 1", "Falante 2", etc., ou pelo nome quando mencionado) e um timestamp aproximado no formato MM:SS para cada fala.
2. Produza um resumo com os pontos chave da reunião, cada um com timestamp.
3. Liste as ações acordadas, cada uma com o responsável e o timestamp. Se nenhum responsável for mencionado, use "Não definido".
Responda estritamente no formato JSON solicitado.

Transcrição bruta:
%s`

func transcriptAnalysisPrompt(raw string) string {
	return fmt.Sprintf(transcriptAnalysisPromptFmt, raw)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent and Files
// APIs used for meeting analysis
type GeminiClient struct {
	apiKey         string
	baseURL        string
	fastModel      string
	deepModel      string
	thinkingBudget int
	client         *http.Client
}

// MediaInput references the audio/video to analyze: either inline base64
// bytes or the URI of a previously uploaded file, never both.
type MediaInput struct {
	MimeType string
	Data     string // base64
	URI      string
}

// NewGeminiClient creates a Gemini client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_API_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	fast := "gemini-2.5-flash"
	deep := "gemini-2.5-pro"
	budget := 32768
	timeout := 5 * time.Minute
	if cfg != nil {
		if cfg.FastModel != "" {
			fast = cfg.FastModel
		}
		if cfg.DeepModel != "" {
			deep = cfg.DeepModel
		}
		if cfg.ThinkingBudget > 0 {
			budget = cfg.ThinkingBudget
		}
		if cfg.RequestTimeout > 0 {
			timeout = cfg.RequestTimeout
		}
	}

	return &GeminiClient{
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(base, "/"),
		fastModel:      fast,
		deepModel:      deep,
		thinkingBudget: budget,
		client:         &http.Client{Timeout: timeout},
	}
}

// Request/response shapes for generateContent

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
	FileData   *fileData   `json:"file_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type fileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	ThinkingConfig   *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// model selects the profile for the requested analysis depth
func (g *GeminiClient) model(deep bool) string {
	if deep {
		return g.deepModel
	}
	return g.fastModel
}

// GenerateMediaAnalysis asks the model to transcribe and summarize a
// recording. Returns the raw reply text; typed errors cover blocked and
// empty replies. Exactly one outbound call per invocation, no retries.
func (g *GeminiClient) GenerateMediaAnalysis(ctx context.Context, media MediaInput, deep bool) (string, error) {
	var mediaPart generatePart
	switch {
	case media.URI != "":
		mediaPart.FileData = &fileData{MimeType: media.MimeType, FileURI: media.URI}
	case media.Data != "":
		mediaPart.InlineData = &inlineData{MimeType: media.MimeType, Data: media.Data}
	default:
		return "", apperrors.ErrInvalidMediaInput("nem dados de mídia nem URI foram fornecidos para análise")
	}

	req := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{mediaPart, {Text: mediaAnalysisPrompt}}},
		},
		GenerationConfig: g.generationConfig(deep),
	}

	return g.generate(ctx, g.model(deep), req)
}

// GenerateTranscriptAnalysis asks the model to structure and summarize a raw
// live transcript instead of media bytes.
func (g *GeminiClient) GenerateTranscriptAnalysis(ctx context.Context, rawTranscript string, deep bool) (string, error) {
	req := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: transcriptAnalysisPrompt(rawTranscript)}}},
		},
		GenerationConfig: g.generationConfig(deep),
	}

	return g.generate(ctx, g.model(deep), req)
}

func (g *GeminiClient) generationConfig(deep bool) *generationConfig {
	cfg := &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisResponseSchema,
	}
	if deep {
		cfg.ThinkingConfig = &thinkingConfig{ThinkingBudget: g.thinkingBudget}
	}
	return cfg
}

func (g *GeminiClient) generate(ctx context.Context, model string, payload generateRequest) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}

	text := strings.TrimSpace(gr.text())
	if text == "" {
		if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
			return "", apperrors.ErrContentBlocked(gr.PromptFeedback.BlockReason)
		}
		return "", apperrors.ErrEmptyResponse()
	}

	return text, nil
}

// Reachable reports whether the provider endpoint answers at all. Used as a
// fast-fail connectivity probe; any HTTP response counts as reachable.
func (g *GeminiClient) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "HEAD", g.baseURL, nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// text concatenates the text parts of the first candidate
func (gr *generateResponse) text() string {
	if len(gr.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

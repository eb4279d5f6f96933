package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/pkg/config"
)

func testClient(baseURL string) *GeminiClient {
	return NewGeminiClient(&config.GeminiConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		FastModel:      "gemini-2.5-flash",
		DeepModel:      "gemini-2.5-pro",
		ThinkingBudget: 32768,
	})
}

func TestGenerateMediaAnalysis_Inline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash") {
			t.Fatalf("expected fast model in path, got %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		parts := payload.Contents[0].Parts
		if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "audio/mpeg" {
			t.Fatalf("expected inline media part, got %+v", parts[0])
		}
		if parts[0].FileData != nil {
			t.Fatalf("inline request must not carry file data")
		}
		if payload.GenerationConfig.ThinkingConfig != nil {
			t.Fatalf("fast mode must not set a thinking budget")
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": `{"ok":true}`}}}},
			},
		})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	out, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "audio/mpeg", Data: "AAAA"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestGenerateMediaAnalysis_FileURI_Deep(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-pro") {
			t.Fatalf("expected deep model in path, got %s", r.URL.Path)
		}
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		parts := payload.Contents[0].Parts
		if parts[0].FileData == nil || parts[0].FileData.FileURI != "files/abc" {
			t.Fatalf("expected file data part, got %+v", parts[0])
		}
		if parts[0].InlineData != nil {
			t.Fatalf("uri request must not carry inline data")
		}
		if payload.GenerationConfig.ThinkingConfig == nil || payload.GenerationConfig.ThinkingConfig.ThinkingBudget != 32768 {
			t.Fatalf("deep mode must set the thinking budget")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "deep"}}}},
			},
		})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	out, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "video/mp4", URI: "files/abc"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "deep" {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestGenerateMediaAnalysis_NoInput(t *testing.T) {
	client := testClient("http://unused")
	_, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "audio/mpeg"}, false)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_INVALID_MEDIA_INPUT {
		t.Fatalf("expected invalid media input error, got %v", err)
	}
}

func TestGenerateMediaAnalysis_Blocked(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"promptFeedback": map[string]string{"blockReason": "SAFETY"},
		})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "audio/mpeg", Data: "AAAA"}, false)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_CONTENT_BLOCKED {
		t.Fatalf("expected content blocked error, got %v", err)
	}
	if !strings.Contains(appErr.Message, "SAFETY") {
		t.Fatalf("block reason missing from message: %s", appErr.Message)
	}
}

func TestGenerateMediaAnalysis_Empty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "audio/mpeg", Data: "AAAA"}, false)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_EMPTY_RESPONSE {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestGenerateTranscriptAnalysis(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		text := payload.Contents[0].Parts[0].Text
		if !strings.Contains(text, "bom dia pessoal vamos começar") {
			t.Fatalf("raw transcript missing from prompt")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "ok"}}}},
			},
		})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	out, err := client.GenerateTranscriptAnalysis(context.Background(), "bom dia pessoal vamos começar", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.GenerateMediaAnalysis(context.Background(), MediaInput{MimeType: "audio/mpeg", Data: "AAAA"}, false)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// File processing states reported by the Files API
const (
	FileStateProcessing = "PROCESSING"
	FileStateActive     = "ACTIVE"
	FileStateFailed     = "FAILED"
)

// FileRef identifies an uploaded file and its processing state
type FileRef struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	State    string `json:"state"`
	MimeType string `json:"mimeType"`
}

type uploadFileResponse struct {
	File FileRef `json:"file"`
}

// UploadFile sends raw media bytes to the Files API and returns the file
// reference. Large recordings go through here instead of inline base64.
func (g *GeminiClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (*FileRef, error) {
	endpoint := fmt.Sprintf("%s/upload/v1beta/files", g.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")
	if displayName != "" {
		req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("file upload returned status %d", resp.StatusCode)
	}

	var ur uploadFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, err
	}
	if ur.File.Name == "" {
		return nil, fmt.Errorf("file upload response missing file name")
	}

	return &ur.File, nil
}

// GetFile fetches the current metadata of an uploaded file. name is the
// resource name returned by UploadFile, e.g. "files/abc123".
func (g *GeminiClient) GetFile(ctx context.Context, name string) (*FileRef, error) {
	endpoint := fmt.Sprintf("%s/v1beta/%s", g.baseURL, strings.TrimPrefix(name, "/"))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("file status returned status %d", resp.StatusCode)
	}

	var ref FileRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, err
	}

	return &ref, nil
}

// DeleteFile removes an uploaded file. Callers treat failures as
// best-effort cleanup.
func (g *GeminiClient) DeleteFile(ctx context.Context, name string) error {
	endpoint := fmt.Sprintf("%s/v1beta/%s", g.baseURL, strings.TrimPrefix(name, "/"))

	req, err := http.NewRequestWithContext(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("file delete returned status %d", resp.StatusCode)
	}

	return nil
}

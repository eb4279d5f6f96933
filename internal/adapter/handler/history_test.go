package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbmarquetti/notas-magicas/internal/adapter/repository"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
	"github.com/dbmarquetti/notas-magicas/internal/infrastructure/cache"
	pkgvalidator "github.com/dbmarquetti/notas-magicas/pkg/validator"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func seedHistory(t *testing.T, repo *repository.HistoryRepository) entities.HistoryItem {
	t.Helper()
	analysis := entities.FullAnalysis{
		Summary: entities.MeetingSummary{
			KeyPoints:   []entities.KeyPoint{{Point: "decisão tomada", Timestamp: "03:20"}},
			ActionItems: []entities.ActionItem{{Action: "enviar ata", Responsible: "Carla", Timestamp: "45:10"}},
		},
		Transcript: []entities.TranscriptEntry{
			{Speaker: "Falante 1", Text: "vamos decidir isso hoje", Timestamp: "03:15"},
		},
	}
	item := entities.NewHistoryItem("planejamento.mp3", analysis, entities.AnalysisSourceUpload, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Append(context.Background(), item))
	return item
}

func TestHistoryList(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []entities.HistoryItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, item.ID, body.Data[0].ID)
}

func TestHistoryGet_NotFound(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryExport_Txt(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/x/export?format=txt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(formatID(item.ID))

	require.NoError(t, h.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "notas-magicas-planejamento-2026-08-29.txt")

	body := rec.Body.String()
	assert.Contains(t, body, "--- RESUMO ---")
	assert.Contains(t, body, "enviar ata (Responsável: Carla)")
	assert.Contains(t, body, "vamos decidir isso hoje")
}

func TestHistoryExport_Markdown(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/x/export?format=md", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(formatID(item.ID))

	require.NoError(t, h.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "## Resumo")
	assert.True(t, strings.Contains(rec.Body.String(), "> vamos decidir isso hoje"))
}

func TestHistoryExport_BadFormat(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/x/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(formatID(item.ID))

	require.NoError(t, h.Export(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryClear(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/v1/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Clear(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	items, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

type fakeExportStore struct {
	saved map[string]string
}

func (f *fakeExportStore) SaveExport(ctx context.Context, fileName, content, contentType string) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	objectName := "exports/" + fileName
	f.saved[objectName] = content
	return objectName, nil
}

func (f *fakeExportStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.example.com/" + objectName + "?sig=abc", nil
}

func (f *fakeExportStore) ListExports(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.saved))
	for name := range f.saved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func TestHistoryExport_Stored(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	store := &fakeExportStore{}
	h := NewHistory(repo, store, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/x/export?format=md&store=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(formatID(item.ID))

	require.NoError(t, h.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			FileName  string `json:"file_name"`
			StoredURL string `json:"stored_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "notas-magicas-planejamento-2026-08-29.md", body.Data.FileName)
	assert.Contains(t, body.Data.StoredURL, "exports/notas-magicas-planejamento-2026-08-29.md")
	assert.Contains(t, store.saved["exports/notas-magicas-planejamento-2026-08-29.md"], "## Resumo")
}

func TestHistoryExport_StoredWithoutStorage(t *testing.T) {
	repo := repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil)
	item := seedHistory(t, repo)
	h := NewHistory(repo, nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/history/x/export?store=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(formatID(item.ID))

	require.NoError(t, h.Export(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListExports(t *testing.T) {
	store := &fakeExportStore{saved: map[string]string{
		"exports/notas-magicas-planejamento-2026-08-29.md":  "# x",
		"exports/notas-magicas-planejamento-2026-08-29.txt": "x",
	}}
	h := NewHistory(repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil), store, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/exports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListExports(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{
		"exports/notas-magicas-planejamento-2026-08-29.md",
		"exports/notas-magicas-planejamento-2026-08-29.txt",
	}, body.Data)
}

func TestListExports_WithoutStorage(t *testing.T) {
	h := NewHistory(repository.NewHistoryRepository(cache.NewMemoryStore(), "", nil), nil, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/exports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListExports(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

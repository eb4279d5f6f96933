package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/dto/meeting"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/repository"
	"github.com/dbmarquetti/notas-magicas/internal/usecase/export"
)

// exportLinkExpiry bounds how long a stored-export download link stays valid
const exportLinkExpiry = 24 * time.Hour

var errObjectStorageOff = errors.New("object storage is not configured")

// ExportStore persists generated export documents in object storage
type ExportStore interface {
	SaveExport(ctx context.Context, fileName, content, contentType string) (string, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	ListExports(ctx context.Context) ([]string, error)
}

// History handles the analysis history and exports
type History struct {
	repo    *repository.HistoryRepository
	exports ExportStore
	logger  *zap.Logger
}

// NewHistory creates the history handler. exports may be nil when no object
// storage is configured; exports are then only returned inline.
func NewHistory(repo *repository.HistoryRepository, exports ExportStore, logger *zap.Logger) *History {
	return &History{repo: repo, exports: exports, logger: logger}
}

// List returns the stored history, newest first
func (h *History) List(c echo.Context) error {
	items, err := h.repo.Load(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, items)
}

// Get returns a single history item
func (h *History) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.repo.Find(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, item)
}

// Delete removes a single history item
func (h *History) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// Clear removes the whole history
func (h *History) Clear(c echo.Context) error {
	if err := h.repo.Clear(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// Export renders a history item as a downloadable document. format is
// "txt" (default) or "md". With store=true the document is persisted to
// object storage and a temporary download link is returned instead of the
// document body.
func (h *History) Export(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	item, err := h.repo.Find(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "txt"
	}

	date, parseErr := time.Parse(time.RFC3339, item.Date)
	if parseErr != nil {
		date = time.UnixMilli(item.ID)
	}

	var content, contentType, ext string
	switch format {
	case "txt":
		content, err = export.ToPlainText(&item.Analysis, item.Title, date)
		contentType, ext = "text/plain; charset=utf-8", "txt"
	case "md":
		content, err = export.ToMarkdown(&item.Analysis, item.Title, date)
		contentType, ext = "text/markdown; charset=utf-8", "md"
	default:
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("formato de exportação inválido: use txt ou md"))
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileName := export.FileName(item.Title, ext, date)

	if c.QueryParam("store") == "true" {
		if h.exports == nil {
			return HandleError(h.logger, c, apperrors.ErrStorageFailed("export", errObjectStorageOff))
		}
		objectName, err := h.exports.SaveExport(ctx, fileName, content, contentType)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrStorageFailed("export", err))
		}
		url, err := h.exports.PresignedURL(ctx, objectName, exportLinkExpiry)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrStorageFailed("export link", err))
		}
		return HandleSuccess(h.logger, c, meeting.ExportResponse{FileName: fileName, StoredURL: url})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, contentType, []byte(content))
}

// ListExports returns the object names of previously stored export documents
func (h *History) ListExports(c echo.Context) error {
	if h.exports == nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("export", errObjectStorageOff))
	}

	names, err := h.exports.ListExports(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("export", err))
	}
	if names == nil {
		names = []string{}
	}
	return HandleSuccess(h.logger, c, names)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidArgument("id inválido")
	}
	return id, nil
}

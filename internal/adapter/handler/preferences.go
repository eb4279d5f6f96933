package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/dto/meeting"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/repository"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

// Preferences handles display preference reads and writes
type Preferences struct {
	repo   *repository.PreferencesRepository
	logger *zap.Logger
}

// NewPreferences creates the preferences handler
func NewPreferences(repo *repository.PreferencesRepository, logger *zap.Logger) *Preferences {
	return &Preferences{repo: repo, logger: logger}
}

// Get returns the stored preferences or the defaults
func (h *Preferences) Get(c echo.Context) error {
	prefs, err := h.repo.Load(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, prefs)
}

// Update replaces the stored preferences
func (h *Preferences) Update(c echo.Context) error {
	var req meeting.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("corpo da requisição inválido"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("preferências inválidas: tema deve ser light ou dark e o tamanho da fonte entre 12 e 20"))
	}

	prefs := entities.Preferences{
		Theme:    entities.Theme(req.Theme),
		FontSize: req.FontSize,
	}
	if err := h.repo.Save(c.Request().Context(), prefs); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, prefs)
}

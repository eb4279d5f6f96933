package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

const preferencesKey = "userPreferences"

// PreferencesRepository persists display preferences under a single key
type PreferencesRepository struct {
	kv     KV
	logger *zap.Logger
}

// NewPreferencesRepository creates a preferences repository
func NewPreferencesRepository(kv KV, logger *zap.Logger) *PreferencesRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferencesRepository{kv: kv, logger: logger}
}

// Load returns the stored preferences, falling back to the defaults when
// nothing is stored or the document is corrupt. Out-of-range font sizes are
// clamped on the way out.
func (r *PreferencesRepository) Load(ctx context.Context) (entities.Preferences, error) {
	prefs := entities.DefaultPreferences()

	raw, found, err := r.kv.Get(ctx, preferencesKey)
	if err != nil {
		return prefs, apperrors.ErrInternal(err)
	}
	if !found || raw == "" {
		return prefs, nil
	}

	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		r.logger.Warn("preferences document is corrupt, using defaults", zap.Error(err))
		return entities.DefaultPreferences(), nil
	}

	if prefs.Theme != entities.ThemeLight && prefs.Theme != entities.ThemeDark {
		prefs.Theme = entities.DefaultPreferences().Theme
	}
	prefs.FontSize = entities.ClampFontSize(prefs.FontSize)

	return prefs, nil
}

// Save stores the preferences, clamping the font size first
func (r *PreferencesRepository) Save(ctx context.Context, prefs entities.Preferences) error {
	prefs.FontSize = entities.ClampFontSize(prefs.FontSize)

	b, err := json.Marshal(prefs)
	if err != nil {
		return apperrors.ErrInternal(err)
	}
	if err := r.kv.Set(ctx, preferencesKey, string(b)); err != nil {
		return apperrors.ErrInternal(err)
	}
	return nil
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
	"github.com/dbmarquetti/notas-magicas/internal/infrastructure/cache"
)

func TestPreferencesRepository_Defaults(t *testing.T) {
	repo := NewPreferencesRepository(cache.NewMemoryStore(), nil)

	prefs, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeLight, prefs.Theme)
	assert.Equal(t, entities.FontSizeDefault, prefs.FontSize)
}

func TestPreferencesRepository_RoundTrip(t *testing.T) {
	repo := NewPreferencesRepository(cache.NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entities.Preferences{Theme: entities.ThemeDark, FontSize: 18}))

	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeDark, prefs.Theme)
	assert.Equal(t, 18, prefs.FontSize)
}

func TestPreferencesRepository_ClampsFontSize(t *testing.T) {
	repo := NewPreferencesRepository(cache.NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entities.Preferences{Theme: entities.ThemeDark, FontSize: 99}))
	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.FontSizeMax, prefs.FontSize)

	require.NoError(t, repo.Save(ctx, entities.Preferences{Theme: entities.ThemeLight, FontSize: 3}))
	prefs, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.FontSizeMin, prefs.FontSize)
}

func TestPreferencesRepository_CorruptDocument(t *testing.T) {
	kv := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "userPreferences", "not json"))

	repo := NewPreferencesRepository(kv, nil)
	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultPreferences(), prefs)
}

func TestPreferencesRepository_InvalidTheme(t *testing.T) {
	kv := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "userPreferences", `{"theme":"neon","font_size":16}`))

	repo := NewPreferencesRepository(kv, nil)
	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeLight, prefs.Theme)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShelfSort/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shelfsort.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "shelfsort", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.Server.TrustProxyHeaders)

	settings, err := cfg.Sort.Settings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
sort:
  placement: free
  rotation: rotated
  shelves: 4
  shelf_width: 330
  shelf_height: 330
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	settings, err := cfg.Sort.Settings()
	require.NoError(t, err)
	assert.Equal(t, model.PlacementFree, settings.Placement)
	assert.Equal(t, model.RotationRotated, settings.Rotation)
	assert.Equal(t, 4, settings.ShelfCount)
	assert.Equal(t, 330.0, settings.ShelfWidth)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "sort:\n  placement: horizontal\n  shelves: 4\n")
	t.Setenv("SHELFSORT_SORT_PLACEMENT", "FREE")
	t.Setenv("SHELFSORT_SERVER_PORT", "9090")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "FREE", cfg.Sort.Placement)
	assert.Equal(t, 4, cfg.Sort.Shelves)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SHELFSORT_SORT_SHELVES", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--shelves", "3", "--rotation", "FREE_ROTATION"}))

	cfg, err := Load(writeConfig(t, ""), fs)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Sort.Shelves)
	assert.Equal(t, "FREE_ROTATION", cfg.Sort.Rotation)
	assert.Equal(t, "VERTICAL", cfg.Sort.Placement, "unset flags do not mask defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yaml"), nil) })
}

func TestSortConfig_SettingsRejectsBadValues(t *testing.T) {
	base := SortConfig{Placement: "VERTICAL", Rotation: "NOT_ROTATED", Shelves: 2, ShelfWidth: 380, ShelfHeight: 380}

	bad := base
	bad.Placement = "sideways"
	_, err := bad.Settings()
	assert.ErrorIs(t, err, model.ErrInvalidSettings)

	bad = base
	bad.Rotation = "spun"
	_, err = bad.Settings()
	assert.ErrorIs(t, err, model.ErrInvalidSettings)

	bad = base
	bad.Shelves = -2
	_, err = bad.Settings()
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
}

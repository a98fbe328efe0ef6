package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBalance(), cfg.Balance)
	assert.Empty(t, cfg.Layouts)
}

func TestLoadOverridesAndLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl.yaml")
	body := `
balance:
  player_hp: 10
  gold_pile: 5
layouts:
  - name: tiny
    width: 3
    height: 1
    data: "@.E"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Balance.PlayerHP)
	assert.Equal(t, 5, cfg.Balance.GoldPile)
	assert.Equal(t, 7, cfg.Balance.PlayerDamage, "unset fields keep defaults")

	require.Len(t, cfg.Layouts, 1)
	assert.Equal(t, "tiny", cfg.Layouts[0].Name)
	assert.Equal(t, "@.E", cfg.Layouts[0].Data)
}

func TestLoadRejectsBadLayouts(t *testing.T) {
	for name, body := range map[string]string{
		"no name":  "layouts:\n  - width: 1\n    height: 1\n    data: \"@\"\n",
		"bad size": "layouts:\n  - name: x\n    width: 0\n    height: 1\n    data: \"@\"\n",
		"bad yaml": "balance: [",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crawl.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("GRIDCRAWL_TEST_VAR", "set")
	assert.Equal(t, "set", Getenv("GRIDCRAWL_TEST_VAR", "def"))
	assert.Equal(t, "def", Getenv("GRIDCRAWL_TEST_UNSET", "def"))
}

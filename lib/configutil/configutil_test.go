package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Scope   string `json:"scope"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{base_url: "https://api.example.com", scope: "read"}`),
		0600,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{scope: "write"}`),
		0600,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", cfg.BaseUrl)
	require.Equal(t, "write", cfg.Scope)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("REFASSIST_TEST_SECRET", "from-env")
	require.Equal(t, "from-env", EnvOverride("REFASSIST_TEST_SECRET", "from-file"))
	require.Equal(t, "from-file", EnvOverride("REFASSIST_TEST_SECRET_UNSET", "from-file"))
}

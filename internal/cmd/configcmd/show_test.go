package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/elunadoc/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		MethodsDir: "/src/methods",
		HooksFile:  "/src/hooks/Hooks.h",
		OutputDir:  "docs",
	}
	require.NoError(t, cfg.Save(configPath))

	var buf bytes.Buffer
	err := runShow(&buf, configPath, true)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "/src/methods  (source: config)")
	assert.Contains(t, output, "/src/hooks/Hooks.h  (source: config)")
	assert.Contains(t, output, "Global  (source: default)")
	assert.Contains(t, output, "BigIntMethods.h  (source: default)")
	assert.NotContains(t, output, "file not found")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{MethodsDir: "/file/methods"}).Save(configPath))
	t.Setenv("ELUNADOC_METHODS_DIR", "/env/methods")

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, configPath, true))

	assert.Contains(t, buf.String(), "/env/methods  (source: ELUNADOC_METHODS_DIR)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	err := runShow(&buf, filepath.Join(t.TempDir(), "config.yml"), true)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "(file not found)")
	assert.Contains(t, output, "Hooks file:")
}

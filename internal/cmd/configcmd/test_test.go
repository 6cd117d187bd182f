package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/elunadoc/internal/config"
)

const testHooks = `#define SERVER_EVENTS_LIST(X) \
    X(SERVER_EVENT_ON_NETWORK_START, 1, "on_network_start")

static constexpr HookStorage HookTypeTable[] = {
    { "server", ServerEventsTable, CountOf(ServerEventsTable) },
    { "creature", CreatureEventsTable, CountOf(CreatureEventsTable) },
};
`

func testConfig(t *testing.T, hooks string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	methods := filepath.Join(dir, "methods")
	require.NoError(t, os.Mkdir(methods, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(methods, "UnitMethods.h"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(methods, "BigIntMethods.h"), nil, 0644))

	cfg := &config.Config{MethodsDir: methods, OutputDir: filepath.Join(dir, "build")}
	if hooks != "" {
		cfg.HooksFile = filepath.Join(dir, "Hooks.h")
		require.NoError(t, os.WriteFile(cfg.HooksFile, []byte(hooks), 0644))
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestRunTest_Success(t *testing.T) {
	cfg := testConfig(t, testHooks)

	var buf bytes.Buffer
	err := runTest(&buf, "", true, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ Found 1 method headers")
	assert.Contains(t, output, "✓ Loaded 2 hook categories")
	assert.Contains(t, output, `! `)
	assert.Contains(t, output, `"creature"`)
}

func TestRunTest_NoHooksFile(t *testing.T) {
	cfg := testConfig(t, "")

	var buf bytes.Buffer
	require.NoError(t, runTest(&buf, "", true, cfg))
	assert.Contains(t, buf.String(), "No hooks file configured")
}

func TestRunTest_InvalidConfig(t *testing.T) {
	err := runTest(&bytes.Buffer{}, "", true, &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "methods_dir is required")
}

func TestRunTest_EmptyMethodsDir(t *testing.T) {
	cfg := &config.Config{MethodsDir: t.TempDir(), OutputDir: "build"}
	cfg.ApplyDefaults()

	err := runTest(&bytes.Buffer{}, "", true, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no method headers found")
}

func TestRunTest_HooksWithoutTable(t *testing.T) {
	cfg := testConfig(t, "#define SERVER_EVENTS_LIST(X) \\\n")

	err := runTest(&bytes.Buffer{}, "", true, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hook categories found")
}

func TestRunTest_LoadsConfigFile(t *testing.T) {
	clearEnv(t)
	cfg := testConfig(t, "")
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, cfg.Save(path))

	var buf bytes.Buffer
	require.NoError(t, runTest(&buf, path, true, nil))
	assert.Contains(t, buf.String(), "Checking methods directory "+cfg.MethodsDir)
}

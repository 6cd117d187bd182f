package parse

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
)

const creatureHeader = `/***
 * Non-[Player] controlled [Unit]s.
 */
namespace LuaCreature
{
    /**
     * Returns the [Creature]'s current target.
     *
     * @param CreatureAI ai
     * @return [Unit] target
     */
    int GetVictim(Eluna* E, Creature* creature)
    {
        return 1;
    }

    int Respawn(Eluna* E, Creature* creature)
    {
        return 0;
    }
};
`

func writeHeader(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestRunParse_Table(t *testing.T) {
	path := writeHeader(t, "CreatureMethods.h", creatureHeader)

	var out, errOut bytes.Buffer
	opts := &parseOptions{files: []string{path}, noColor: true, out: &out, errOut: &errOut}

	err := runParse(opts, defaultConfig())
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "CLASS")
	assert.Contains(t, output, "target = Creature:GetVictim( ai )")
	assert.Contains(t, output, "Creature:Respawn()")

	// CreatureAI is neither a Lua type nor bracketed.
	assert.Contains(t, errOut.String(), "CreatureMethods.h:9:")
}

func TestRunParse_JSON(t *testing.T) {
	path := writeHeader(t, "CreatureMethods.h", creatureHeader)

	var out bytes.Buffer
	opts := &parseOptions{files: []string{path}, output: "json", noColor: true, out: &out, errOut: &bytes.Buffer{}}

	require.NoError(t, runParse(opts, defaultConfig()))

	var results []luadoc.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Creature", results[0].Class.Name)
	assert.Len(t, results[0].Class.Methods, 2)
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, luadoc.UnbracketedCustomType, results[0].Diagnostics[0].Kind)
}

func TestRunParse_ClassOverride(t *testing.T) {
	path := writeHeader(t, "creature.h", creatureHeader)

	var out bytes.Buffer
	opts := &parseOptions{files: []string{path}, className: "Mob", noColor: true, out: &out}

	require.NoError(t, runParse(opts, defaultConfig()))
	assert.Contains(t, out.String(), "Mob:Respawn()")
}

func TestRunParse_ClassOverrideWithManyFiles(t *testing.T) {
	opts := &parseOptions{files: []string{"a.h", "b.h"}, className: "Mob", out: &bytes.Buffer{}}

	err := runParse(opts, defaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--class can only be used with a single file")
}

func TestRunParse_GlobalClassFromConfig(t *testing.T) {
	path := writeHeader(t, "ElunaMethods.h", "int GetLuaEngine(lua_State* L)\n")
	cfg := &config.Config{GlobalClass: "Eluna"}
	cfg.ApplyDefaults()

	var out bytes.Buffer
	opts := &parseOptions{files: []string{path}, output: "plain", noColor: true, out: &out}

	require.NoError(t, runParse(opts, cfg))
	assert.Equal(t, "Eluna\tGetLuaEngine\tno\tGetLuaEngine()\n", out.String())
}

func TestRunParse_InvalidFormat(t *testing.T) {
	opts := &parseOptions{files: []string{"a.h"}, output: "xml"}

	err := runParse(opts, defaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunParse_MissingFile(t *testing.T) {
	opts := &parseOptions{files: []string{filepath.Join(t.TempDir(), "NoneMethods.h")}, out: &bytes.Buffer{}}

	err := runParse(opts, defaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRunParse_Verbose(t *testing.T) {
	path := writeHeader(t, "CreatureMethods.h", creatureHeader)

	var out, errOut bytes.Buffer
	opts := &parseOptions{files: []string{path}, noColor: true, verbose: true, out: &out, errOut: &errOut}

	require.NoError(t, runParse(opts, defaultConfig()))
	assert.Contains(t, errOut.String(), "Parsing file CreatureMethods.h...")
}

func TestNewCmdParse(t *testing.T) {
	cmd := NewCmdParse()

	assert.Equal(t, "parse <file>...", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("class"))
	assert.NotNil(t, cmd.Flags().Lookup("hooks-file"))
	assert.NotNil(t, cmd.Flags().Lookup("global-class"))
	assert.Error(t, cmd.Args(cmd, nil))
}

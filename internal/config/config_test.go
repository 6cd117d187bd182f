package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				MethodsDir: "src/LuaEngine/methods/TrinityCore",
				OutputDir:  "build",
			},
			wantErr: false,
		},
		{
			name: "missing methods dir",
			config: Config{
				OutputDir: "build",
			},
			wantErr: true,
			errMsg:  "methods_dir is required",
		},
		{
			name: "missing output dir",
			config: Config{
				MethodsDir: "methods",
			},
			wantErr: true,
			errMsg:  "output_dir is required",
		},
		{
			name: "suffix is not a header",
			config: Config{
				MethodsDir: "methods",
				OutputDir:  "build",
				FileSuffix: "Methods.cpp",
			},
			wantErr: true,
			errMsg:  "file_suffix must end in .h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Run("fills empty fields", func(t *testing.T) {
		cfg := &Config{MethodsDir: "methods"}
		cfg.ApplyDefaults()

		assert.Equal(t, "build", cfg.OutputDir)
		assert.Equal(t, "Global", cfg.GlobalClass)
		assert.Equal(t, "Methods.h", cfg.FileSuffix)
		assert.Equal(t, []string{"BigIntMethods.h"}, cfg.Exclude)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &Config{
			OutputDir:   "docs",
			GlobalClass: "Eluna",
			FileSuffix:  "Funcs.h",
			Exclude:     []string{},
		}
		cfg.ApplyDefaults()

		assert.Equal(t, "docs", cfg.OutputDir)
		assert.Equal(t, "Eluna", cfg.GlobalClass)
		assert.Equal(t, "Funcs.h", cfg.FileSuffix)
		assert.Empty(t, cfg.Exclude)
	})

	t.Run("default exclude list is not shared", func(t *testing.T) {
		cfg := &Config{}
		cfg.ApplyDefaults()
		cfg.Exclude[0] = "changed"

		assert.Equal(t, "BigIntMethods.h", DefaultExclude[0])
	})
}

func TestConfig_IsExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"BigIntMethods.h"}}

	assert.True(t, cfg.IsExcluded("BigIntMethods.h"))
	assert.True(t, cfg.IsExcluded(filepath.Join("methods", "BigIntMethods.h")))
	assert.False(t, cfg.IsExcluded("PlayerMethods.h"))
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("ELUNADOC_METHODS_DIR", "/src/methods")
		t.Setenv("ELUNADOC_HOOKS_FILE", "/src/hooks/Hooks.h")
		t.Setenv("ELUNADOC_OUTPUT_DIR", "/tmp/out")
		t.Setenv("ELUNADOC_GLOBAL_CLASS", "Eluna")
		t.Setenv("ELUNADOC_EXCLUDE", "BigIntMethods.h, TestMethods.h,")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "/src/methods", cfg.MethodsDir)
		assert.Equal(t, "/src/hooks/Hooks.h", cfg.HooksFile)
		assert.Equal(t, "/tmp/out", cfg.OutputDir)
		assert.Equal(t, "Eluna", cfg.GlobalClass)
		assert.Equal(t, []string{"BigIntMethods.h", "TestMethods.h"}, cfg.Exclude)
	})

	t.Run("env vars override existing values", func(t *testing.T) {
		t.Setenv("ELUNADOC_METHODS_DIR", "/override")
		t.Setenv("ELUNADOC_OUTPUT_DIR", "")

		cfg := &Config{
			MethodsDir: "/original",
			OutputDir:  "/original/out",
		}
		cfg.LoadFromEnv()

		assert.Equal(t, "/override", cfg.MethodsDir)
		// Empty env var doesn't override
		assert.Equal(t, "/original/out", cfg.OutputDir)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, filepath.Join("/xdg", "elunadoc", "config.yml"), DefaultConfigPath())
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, ".config", "elunadoc", "config.yml"), DefaultConfigPath())
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yml")

	original := Config{
		MethodsDir:   "methods",
		HooksFile:    "hooks/Hooks.h",
		OutputDir:    "build",
		GlobalClass:  "Global",
		FileSuffix:   "Methods.h",
		Exclude:      []string{"BigIntMethods.h"},
		OutputFormat: "json",
	}

	err := original.Save(configPath)
	require.NoError(t, err)

	loaded, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("methods_dir: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file starts from defaults", func(t *testing.T) {
		t.Setenv("ELUNADOC_METHODS_DIR", "/env/methods")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)

		assert.Equal(t, "/env/methods", cfg.MethodsDir)
		assert.Equal(t, "build", cfg.OutputDir)
		assert.Equal(t, "Global", cfg.GlobalClass)
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("methods_dir: [unclosed"), 0644))

		_, err := LoadWithEnv(path)
		require.Error(t, err)
	})
}

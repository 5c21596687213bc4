package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected Config
	}{
		{
			name: "json with all fields",
			file: "gmockgen.json",
			content: `{
  "author": "Jane Doe",
  "year": 2021,
  "schema": "api/math_ops.json",
  "output": "gen",
  "header": true,
  "mock": true,
  "watch": {"patterns": ["*.json"], "exclude": ["*.bak"]}
}`,
			expected: Config{
				Author: "Jane Doe",
				Year:   2021,
				Schema: "api/math_ops.json",
				Output: "gen",
				Header: true,
				Mock:   true,
				Watch:  WatchConfig{Patterns: []string{"*.json"}, Exclude: []string{"*.bak"}},
			},
		},
		{
			name: "yaml",
			file: "gmockgen.yaml",
			content: `author: Jane Doe
year: 2022
schema: api.yaml
header: true
`,
			expected: Config{
				Author: "Jane Doe",
				Year:   2022,
				Schema: "api.yaml",
				Output: "./generated",
				Header: true,
				Watch:  WatchConfig{Patterns: []string{"*.json", "*.yaml", "*.yml"}, Exclude: []string{"*.tmp", ".git"}},
			},
		},
		{
			name: "toml",
			file: "gmockgen.toml",
			content: `author = "Jane Doe"
year = 2023
mock = true

[watch]
patterns = ["*.yml"]
`,
			expected: Config{
				Author: "Jane Doe",
				Year:   2023,
				Output: "./generated",
				Mock:   true,
				Watch:  WatchConfig{Patterns: []string{"*.yml"}, Exclude: []string{"*.tmp", ".git"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := LoadConfigFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestLoadConfigFromPath_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmockgen.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "gmockgen", cfg.Author)
	assert.Equal(t, time.Now().Year(), cfg.Year)
	assert.Equal(t, "./generated", cfg.Output)
	assert.False(t, cfg.Header)
	assert.False(t, cfg.Mock)
}

func TestLoadConfigFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFromPath(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	bad := filepath.Join(dir, "gmockgen.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"author": `), 0o644))
	_, err = LoadConfigFromPath(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigFromDir(t *testing.T) {
	// Test: Config in a parent directory is found from a nested one
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gmockgen.yml"), []byte("author: parent\n"), 0o644))

	cfg, dir, err := loadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, "parent", cfg.Author)
}

func TestLoadConfigFromDir_Priority(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "gmockgen.toml"), []byte(`author = "toml"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gmockgen.json"), []byte(`{"author": "json"}`), 0o644))

	cfg, _, err := loadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Author)
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`author = "explicit"`), 0o644))

	cfg, dir, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Author)
	assert.Equal(t, filepath.Dir(path), dir)

	_, _, err = Load(filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gmockgen", cfg.Author)
	assert.Equal(t, []string{"*.json", "*.yaml", "*.yml"}, cfg.Watch.Patterns)
	assert.Equal(t, []string{"*.tmp", ".git"}, cfg.Watch.Exclude)
}

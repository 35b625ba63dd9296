package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// A nonexistent path falls back to environment-only loading, which in a
	// clean environment yields the defaults.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "generic", cfg.Dialect)
	assert.Equal(t, 1048576, cfg.MaxInputLength)

	assert.False(t, cfg.Parser.IncludeSystemColumns)
	assert.True(t, cfg.Parser.IncludeIndexes)
	assert.True(t, cfg.Parser.IncludeConstraints)
	assert.True(t, cfg.Parser.IncludeStatistics)
	assert.True(t, cfg.Parser.ValidateSchema)
	assert.True(t, cfg.Parser.EnrichMetadata)
	assert.True(t, cfg.Parser.GenerateTags)

	assert.Equal(t, "postgres", cfg.Datasource.Driver)
	assert.Equal(t, 5432, cfg.Datasource.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: production
dialect: sqlserver
max_input_length: 2048
parser:
  include_indexes: false
  generate_tags: false
datasource:
  driver: mssql
  host: db.internal
  port: 1433
  database: sales
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "dev")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "sqlserver", cfg.Dialect)
	assert.Equal(t, 2048, cfg.MaxInputLength)
	assert.False(t, cfg.Parser.IncludeIndexes)
	assert.False(t, cfg.Parser.GenerateTags)
	assert.Equal(t, "mssql", cfg.Datasource.Driver)
	assert.Equal(t, 1433, cfg.Datasource.Port)
	assert.Equal(t, "sales", cfg.Datasource.Database)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCHEMALENS_DIALECT", "oracle")
	t.Setenv("SCHEMALENS_VALIDATE_SCHEMA", "false")
	t.Setenv("SCHEMALENS_DS_PASSWORD", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "dev")
	require.NoError(t, err)

	assert.Equal(t, "oracle", cfg.Dialect)
	assert.False(t, cfg.Parser.ValidateSchema)
	assert.Equal(t, "s3cret", cfg.Datasource.Password)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{broken: [yaml"), 0o644))

	_, err := Load(path, "dev")
	require.Error(t, err)
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/pkg/parser"
)

// The diff command must accept what the parse command writes: the full result
// envelope, not just a bare schema document.
func TestLoadSchemaFileAcceptsParseOutput(t *testing.T) {
	p := parser.New(nil, parser.DefaultOptions(), nil)

	result, err := p.ParseDDL("CREATE TABLE dbo.Customer (CustomerId int PRIMARY KEY, Email varchar(100) NOT NULL)")
	require.NoError(t, err)

	data, err := json.MarshalIndent(result, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "customer.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	schema, err := loadSchemaFile(p, path)
	require.NoError(t, err)
	assert.Equal(t, "Customer", schema.Name)
	assert.Len(t, schema.Columns, 2)
}

func TestLoadSchemaFileMissing(t *testing.T) {
	p := parser.New(nil, parser.DefaultOptions(), nil)
	_, err := loadSchemaFile(p, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, ExitCode(errSchemasDiffer))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("diff: %w", errSchemasDiffer)))
	assert.Equal(t, 1, ExitCode(errors.New("anything else")))
}

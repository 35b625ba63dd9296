package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/diff"
	"github.com/schemalens/schemalens/pkg/models"
	"github.com/schemalens/schemalens/pkg/parser"
)

// errSchemasDiffer signals the --exit-code result through the command chain so
// the process can exit 2 after the logger flushes.
var errSchemasDiffer = errors.New("schemas differ")

var diffExitCode bool

var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compare two canonical schema files",
	Long: `Diff loads two JSON schema documents, compares them structurally and
prints the resulting delta as JSON on stdout. Added and modified entries follow
the order of the "after" document; removed entries follow the "before" one.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with status 2 when the schemas differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	before, err := loadSchemaFile(p, args[0])
	if err != nil {
		return err
	}
	after, err := loadSchemaFile(p, args[1])
	if err != nil {
		return err
	}

	delta := diff.Compare(before, after)
	logger.Info("schemas compared",
		zap.String("before", before.Name),
		zap.String("after", after.Name),
		zap.Bool("changed", delta.HasChanges()),
	)

	if err := writeJSON(cmd, delta); err != nil {
		return err
	}
	if diffExitCode && delta.HasChanges() {
		return errSchemasDiffer
	}
	return nil
}

func loadSchemaFile(p *parser.SchemaParser, path string) (*models.ParsedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	result, err := p.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return result.Schema, nil
}

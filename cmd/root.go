package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/config"
	"github.com/schemalens/schemalens/pkg/logging"
	"github.com/schemalens/schemalens/pkg/parser"
	"github.com/schemalens/schemalens/pkg/sqltype"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "schemalens",
	Short: "Schema parsing and diffing engine",
	Long: `schemalens turns heterogeneous schema descriptions (DDL text, JSON
schema documents, database catalog metadata) into one canonical schema model
and computes structural differences between two such models.

Commands:
  parse    Parse a DDL or JSON schema file into the canonical model
  diff     Compare two canonical schema files
  inspect  Introspect a live database table into the canonical model`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath, version)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.Env)
		if err != nil {
			return err
		}
		return nil
	},
}

var version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml (default: ./config.yaml)")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI. The logger is flushed here rather than in a post-run
// hook because cobra skips post-run hooks when a command returns an error.
func Execute(v string) error {
	version = v
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil && !errors.Is(err, errSchemasDiffer) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// ExitCode maps an Execute error to a process exit code: 2 when diff found
// changes under --exit-code, 1 for everything else.
func ExitCode(err error) int {
	if errors.Is(err, errSchemasDiffer) {
		return 2
	}
	return 1
}

// newParser builds a SchemaParser from the loaded configuration.
func newParser() (*parser.SchemaParser, error) {
	classifier, err := sqltype.ForDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	if cfg.DialectFile != "" {
		extra, err := sqltype.LoadDialectFile(cfg.DialectFile)
		if err != nil {
			return nil, err
		}
		classifier.Extend(extra)
	}

	opts := parser.Options{
		IncludeSystemColumns: cfg.Parser.IncludeSystemColumns,
		IncludeIndexes:       cfg.Parser.IncludeIndexes,
		IncludeConstraints:   cfg.Parser.IncludeConstraints,
		IncludeStatistics:    cfg.Parser.IncludeStatistics,
		ValidateSchema:       cfg.Parser.ValidateSchema,
		EnrichMetadata:       cfg.Parser.EnrichMetadata,
		GenerateTags:         cfg.Parser.GenerateTags,
	}
	return parser.New(classifier, opts, logger).WithMaxInputLength(cfg.MaxInputLength), nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/logging"
	"github.com/schemalens/schemalens/pkg/parser"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a DDL or JSON schema file into the canonical model",
	Long: `Parse reads a schema description from a file and prints the canonical
parse result as JSON on stdout. The input is either a single CREATE statement
or a JSON schema document; by default the format is detected from the content.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "auto", "input format: ddl, json or auto")
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	p, err := newParser()
	if err != nil {
		return err
	}

	format := parseFormat
	if format == "auto" {
		format = detectFormat(data)
	}

	var result *parser.Result
	switch format {
	case "ddl":
		logger.Debug("parsing ddl input",
			zap.String("file", args[0]),
			zap.String("ddl", logging.SanitizeDDL(string(data))))
		result, err = p.ParseDDL(string(data))
	case "json":
		result, err = p.ParseJSON(data)
	default:
		return fmt.Errorf("unknown format %q (want ddl, json or auto)", format)
	}
	if err != nil {
		return err
	}

	return writeJSON(cmd, result)
}

// detectFormat guesses the input format from its first non-space byte.
func detectFormat(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return "json"
	}
	return "ddl"
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

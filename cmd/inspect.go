package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/schemalens/schemalens/pkg/adapters/datasource"
	"github.com/schemalens/schemalens/pkg/adapters/datasource/mssql"
	"github.com/schemalens/schemalens/pkg/adapters/datasource/postgres"
	"github.com/schemalens/schemalens/pkg/apperrors"
)

var (
	inspectList    bool
	inspectTimeout time.Duration
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [schema.]<table>",
	Short: "Introspect a live database table into the canonical model",
	Long: `Inspect connects to the configured datasource, reads the catalog rows
for one table and prints the canonical parse result as JSON on stdout. With
--list it prints the available tables instead. Connection settings come from
the datasource section of the configuration; the password must be provided via
the SCHEMALENS_DS_PASSWORD environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectList, "list", false, "list tables instead of inspecting one")
	inspectCmd.Flags().DurationVar(&inspectTimeout, "timeout", 30*time.Second, "overall introspection timeout")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if !inspectList && len(args) == 0 {
		return fmt.Errorf("table name required (or use --list)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), inspectTimeout)
	defer cancel()

	reader, err := openCatalogReader(ctx)
	if err != nil {
		return err
	}
	defer reader.Close()

	if inspectList {
		tables, err := reader.ListTables(ctx)
		if err != nil {
			return err
		}
		return writeJSON(cmd, tables)
	}

	schemaName, tableName := splitQualifiedName(args[0])
	if schemaName == "" {
		schemaName = defaultSchemaName(cfg.Datasource.Driver)
	}

	rows, err := reader.ReadTable(ctx, schemaName, tableName)
	if err != nil {
		return err
	}

	p, err := newParser()
	if err != nil {
		return err
	}
	result, err := p.ParseMetadataRows(*rows)
	if err != nil {
		return err
	}
	return writeJSON(cmd, result)
}

func openCatalogReader(ctx context.Context) (datasource.CatalogReader, error) {
	ds := cfg.Datasource
	switch strings.ToLower(ds.Driver) {
	case "postgres", "postgresql":
		return postgres.NewCatalogReader(ctx, &postgres.Config{
			Host:     ds.Host,
			Port:     ds.Port,
			User:     ds.User,
			Password: ds.Password,
			Database: ds.Database,
			SSLMode:  ds.SSLMode,
		}, logger)
	case "mssql", "sqlserver":
		return mssql.NewCatalogReader(ctx, &mssql.Config{
			Host:     ds.Host,
			Port:     ds.Port,
			User:     ds.User,
			Password: ds.Password,
			Database: ds.Database,
		}, logger)
	default:
		return nil, fmt.Errorf("datasource driver %q: %w", ds.Driver, apperrors.ErrUnknownDriver)
	}
}

func splitQualifiedName(name string) (schemaName, tableName string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func defaultSchemaName(driver string) string {
	switch strings.ToLower(driver) {
	case "mssql", "sqlserver":
		return "dbo"
	default:
		return "public"
	}
}

package datasource

import "context"

// CatalogReader reads introspection rows from a live database catalog. The
// rows feed the metadata-rows parse path; the reader itself performs no
// interpretation. Each implementation owns its connection and must be closed
// when done.
type CatalogReader interface {
	// ListTables returns all user tables (excludes system schemas).
	ListTables(ctx context.Context) ([]TableRow, error)

	// ReadTable returns the full set of introspection rows for one table.
	ReadTable(ctx context.Context, schemaName, tableName string) (*TableRows, error)

	// Close releases the database connection.
	Close() error
}

package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/adapters/datasource"
	"github.com/schemalens/schemalens/pkg/logging"
	"github.com/schemalens/schemalens/pkg/retry"
)

// Config holds SQL Server connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func buildConnectionString(cfg *Config) string {
	u := url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
	q := url.Values{}
	q.Set("database", cfg.Database)
	u.RawQuery = q.Encode()
	return u.String()
}

// CatalogReader implements datasource.CatalogReader for SQL Server.
type CatalogReader struct {
	db       *sql.DB
	readerID uuid.UUID
	logger   *zap.Logger
	retryCfg *retry.Config
}

// NewCatalogReader connects to SQL Server and returns a catalog reader.
// If logger is nil, a no-op logger is used.
func NewCatalogReader(ctx context.Context, cfg *Config, logger *zap.Logger) (*CatalogReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connStr := buildConnectionString(cfg)
	logger.Debug("connecting to sqlserver",
		zap.String("conn", logging.SanitizeConnectionString(connStr)))
	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}
	if err := retry.Do(ctx, nil, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}

	readerID := uuid.New()
	return &CatalogReader{
		db:       db,
		readerID: readerID,
		logger:   logger.With(zap.String("reader_id", readerID.String())),
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// Close releases the database connection.
func (r *CatalogReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListTables returns all user tables (excludes system tables).
func (r *CatalogReader) ListTables(ctx context.Context) ([]datasource.TableRow, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    SCHEMA_NAME(t.schema_id) AS table_schema,
	    t.name AS table_name,
	    SUM(p.rows) AS row_count
	FROM sys.tables t
	INNER JOIN sys.partitions p ON t.object_id = p.object_id
	WHERE p.index_id IN (0, 1)
	  AND t.is_ms_shipped = 0
	GROUP BY t.schema_id, t.name
	ORDER BY table_schema, table_name
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.TableRow, error) {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("query tables: %w", err)
		}
		defer rows.Close()

		var tables []datasource.TableRow
		for rows.Next() {
			var t datasource.TableRow
			if err := rows.Scan(&t.TableSchema, &t.TableName, &t.RowCount); err != nil {
				return nil, fmt.Errorf("scan table row: %w", err)
			}
			t.TableType = "BASE TABLE"
			tables = append(tables, t)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate table rows: %w", err)
		}
		return tables, nil
	})
}

// ReadTable returns columns, indexes and constraints for one table.
func (r *CatalogReader) ReadTable(ctx context.Context, schemaName, tableName string) (*datasource.TableRows, error) {
	out := &datasource.TableRows{
		Table: datasource.TableRow{TableSchema: schemaName, TableName: tableName, TableType: "BASE TABLE"},
	}

	columns, err := r.readColumns(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	out.Columns = columns

	indexes, err := r.readIndexes(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	out.Indexes = indexes

	constraints, err := r.readConstraints(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	out.Constraints = constraints

	r.logger.Debug("table introspected",
		zap.String("schema", schemaName),
		zap.String("table", tableName),
		zap.Int("columns", len(out.Columns)),
	)
	return out, nil
}

func (r *CatalogReader) readColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnRow, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    c.name AS column_name,
	    ty.name AS data_type,
	    c.is_nullable,
	    CASE WHEN pk.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_primary_key,
	    CASE WHEN uq.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_unique,
	    c.column_id AS ordinal_position,
	    dc.definition AS column_default,
	    CASE WHEN ty.name IN ('varchar','nvarchar','char','nchar') AND c.max_length > 0
	         THEN CASE WHEN ty.name IN ('nvarchar','nchar') THEN c.max_length / 2 ELSE c.max_length END
	    END AS character_maximum_length,
	    CASE WHEN ty.name IN ('decimal','numeric') THEN c.precision END AS numeric_precision,
	    CASE WHEN ty.name IN ('decimal','numeric') THEN c.scale END AS numeric_scale
	FROM sys.columns c
	INNER JOIN sys.tables t ON t.object_id = c.object_id
	INNER JOIN sys.types ty ON ty.user_type_id = c.user_type_id
	LEFT JOIN sys.default_constraints dc ON dc.object_id = c.default_object_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    INNER JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
	    WHERE i.is_primary_key = 1
	) pk ON pk.object_id = c.object_id AND pk.column_id = c.column_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    INNER JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
	    WHERE i.is_unique = 1 AND i.is_primary_key = 0
	) uq ON uq.object_id = c.object_id AND uq.column_id = c.column_id
	WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2
	ORDER BY c.column_id
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.ColumnRow, error) {
		rows, err := r.db.QueryContext(ctx, query, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("query columns: %w", err)
		}
		defer rows.Close()

		var out []datasource.ColumnRow
		for rows.Next() {
			var c datasource.ColumnRow
			if err := rows.Scan(
				&c.ColumnName, &c.DataType, &c.IsNullable, &c.IsPrimaryKey, &c.IsUnique,
				&c.OrdinalPosition, &c.ColumnDefault,
				&c.CharacterMaximumLength, &c.NumericPrecision, &c.NumericScale,
			); err != nil {
				return nil, fmt.Errorf("scan column row: %w", err)
			}
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate column rows: %w", err)
		}
		return out, nil
	})
}

func (r *CatalogReader) readIndexes(ctx context.Context, schemaName, tableName string) ([]datasource.IndexRow, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    i.name AS index_name,
	    i.type_desc AS index_type,
	    i.is_unique,
	    i.is_primary_key,
	    STRING_AGG(c.name, ',') WITHIN GROUP (ORDER BY ic.key_ordinal) AS column_names
	FROM sys.indexes i
	INNER JOIN sys.tables t ON t.object_id = i.object_id
	INNER JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
	INNER JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
	WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2 AND i.name IS NOT NULL
	GROUP BY i.name, i.type_desc, i.is_unique, i.is_primary_key
	ORDER BY i.name
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.IndexRow, error) {
		rows, err := r.db.QueryContext(ctx, query, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("query indexes: %w", err)
		}
		defer rows.Close()

		var out []datasource.IndexRow
		for rows.Next() {
			var ix datasource.IndexRow
			var columnList string
			if err := rows.Scan(&ix.IndexName, &ix.IndexType, &ix.IsUnique, &ix.IsPrimaryKey, &columnList); err != nil {
				return nil, fmt.Errorf("scan index row: %w", err)
			}
			ix.ColumnNames = splitList(columnList)
			out = append(out, ix)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate index rows: %w", err)
		}
		return out, nil
	})
}

func (r *CatalogReader) readConstraints(ctx context.Context, schemaName, tableName string) ([]datasource.ConstraintRow, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    kc.name AS constraint_name,
	    CASE kc.type WHEN 'PK' THEN 'PRIMARY KEY' ELSE 'UNIQUE' END AS constraint_type,
	    STRING_AGG(c.name, ',') WITHIN GROUP (ORDER BY ic.key_ordinal) AS column_names,
	    '' AS referenced_table,
	    '' AS referenced_columns
	FROM sys.key_constraints kc
	INNER JOIN sys.tables t ON t.object_id = kc.parent_object_id
	INNER JOIN sys.index_columns ic ON ic.object_id = t.object_id AND ic.index_id = kc.unique_index_id
	INNER JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
	WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2
	GROUP BY kc.name, kc.type
	UNION ALL
	SELECT
	    fk.name AS constraint_name,
	    'FOREIGN KEY' AS constraint_type,
	    STRING_AGG(pc.name, ',') AS column_names,
	    OBJECT_NAME(fk.referenced_object_id) AS referenced_table,
	    STRING_AGG(rc.name, ',') AS referenced_columns
	FROM sys.foreign_keys fk
	INNER JOIN sys.tables t ON t.object_id = fk.parent_object_id
	INNER JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
	INNER JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
	INNER JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
	WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2
	GROUP BY fk.name, fk.referenced_object_id
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.ConstraintRow, error) {
		rows, err := r.db.QueryContext(ctx, query, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("query constraints: %w", err)
		}
		defer rows.Close()

		var out []datasource.ConstraintRow
		for rows.Next() {
			var c datasource.ConstraintRow
			var columnList, refList string
			if err := rows.Scan(&c.ConstraintName, &c.ConstraintType, &columnList, &c.ReferencedTable, &refList); err != nil {
				return nil, fmt.Errorf("scan constraint row: %w", err)
			}
			c.ColumnNames = splitList(columnList)
			c.ReferencedColumns = splitList(refList)
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate constraint rows: %w", err)
		}
		return out, nil
	})
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/adapters/datasource"
	"github.com/schemalens/schemalens/pkg/logging"
	"github.com/schemalens/schemalens/pkg/retry"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func buildConnectionString(cfg *Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// CatalogReader implements datasource.CatalogReader for PostgreSQL.
type CatalogReader struct {
	pool     *pgxpool.Pool
	readerID uuid.UUID
	logger   *zap.Logger
	retryCfg *retry.Config
}

// NewCatalogReader connects to PostgreSQL and returns a catalog reader.
// If logger is nil, a no-op logger is used.
func NewCatalogReader(ctx context.Context, cfg *Config, logger *zap.Logger) (*CatalogReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connStr := buildConnectionString(cfg)
	logger.Debug("connecting to postgres",
		zap.String("conn", logging.SanitizeConnectionString(connStr)))
	pool, err := retry.DoWithResult(ctx, nil, func() (*pgxpool.Pool, error) {
		return pgxpool.New(ctx, connStr)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	readerID := uuid.New()
	return &CatalogReader{
		pool:     pool,
		readerID: readerID,
		logger:   logger.With(zap.String("reader_id", readerID.String())),
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// Close releases the connection pool.
func (r *CatalogReader) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

// ListTables returns all user tables (excludes system schemas).
func (r *CatalogReader) ListTables(ctx context.Context) ([]datasource.TableRow, error) {
	const query = `
		SELECT
			t.table_schema,
			t.table_name,
			t.table_type,
			COALESCE(c.reltuples::bigint, 0) AS row_count
		FROM information_schema.tables t
		LEFT JOIN pg_class c ON c.relname = t.table_name
		LEFT JOIN pg_namespace n ON n.oid = c.relnamespace AND n.nspname = t.table_schema
		WHERE t.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY t.table_schema, t.table_name
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.TableRow, error) {
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("query tables: %w", err)
		}
		defer rows.Close()

		var tables []datasource.TableRow
		for rows.Next() {
			var t datasource.TableRow
			if err := rows.Scan(&t.TableSchema, &t.TableName, &t.TableType, &t.RowCount); err != nil {
				return nil, fmt.Errorf("scan table: %w", err)
			}
			tables = append(tables, t)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate tables: %w", err)
		}
		return tables, nil
	})
}

// ReadTable returns columns, indexes and constraints for one table.
func (r *CatalogReader) ReadTable(ctx context.Context, schemaName, tableName string) (*datasource.TableRows, error) {
	out := &datasource.TableRows{
		Table: datasource.TableRow{TableSchema: schemaName, TableName: tableName},
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
		zap.Int("indexes", len(out.Indexes)),
		zap.Int("constraints", len(out.Constraints)),
	)
	return out, nil
}

func (r *CatalogReader) readColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnRow, error) {
	// pg_index detects primary keys even when created as unique indexes
	// (common with ORMs); information_schema alone misses those.
	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES' AS is_nullable,
			COALESCE(pk.is_pk, false) AS is_primary_key,
			COALESCE(uq.is_unique, false) AS is_unique,
			c.ordinal_position,
			c.column_default,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT a.attname AS column_name, true AS is_pk
			FROM pg_index ix
			JOIN pg_class t ON t.oid = ix.indrelid
			JOIN pg_namespace n ON n.oid = t.relnamespace
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
			WHERE ix.indisprimary AND n.nspname = $1 AND t.relname = $2
		) pk ON c.column_name = pk.column_name
		LEFT JOIN (
			SELECT a.attname AS column_name, true AS is_unique
			FROM pg_index ix
			JOIN pg_class t ON t.oid = ix.indrelid
			JOIN pg_namespace n ON n.oid = t.relnamespace
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
			WHERE ix.indisunique AND NOT ix.indisprimary
			  AND n.nspname = $1 AND t.relname = $2
			  AND array_length(ix.indkey, 1) = 1
		) uq ON c.column_name = uq.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.ColumnRow, error) {
		rows, err := r.pool.Query(ctx, query, schemaName, tableName)
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
				return nil, fmt.Errorf("scan column: %w", err)
			}
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate columns: %w", err)
		}
		return out, nil
	})
}

func (r *CatalogReader) readIndexes(ctx context.Context, schemaName, tableName string) ([]datasource.IndexRow, error) {
	const query = `
		SELECT
			i.relname AS index_name,
			am.amname AS index_type,
			ix.indisunique AS is_unique,
			ix.indisprimary AS is_primary_key,
			ARRAY(
				SELECT a.attname
				FROM unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
				JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
				ORDER BY k.ord
			) AS column_names
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_am am ON am.oid = i.relam
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE n.nspname = $1 AND t.relname = $2
		ORDER BY i.relname
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.IndexRow, error) {
		rows, err := r.pool.Query(ctx, query, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("query indexes: %w", err)
		}
		defer rows.Close()

		var out []datasource.IndexRow
		for rows.Next() {
			var ix datasource.IndexRow
			if err := rows.Scan(&ix.IndexName, &ix.IndexType, &ix.IsUnique, &ix.IsPrimaryKey, &ix.ColumnNames); err != nil {
				return nil, fmt.Errorf("scan index: %w", err)
			}
			out = append(out, ix)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate indexes: %w", err)
		}
		return out, nil
	})
}

func (r *CatalogReader) readConstraints(ctx context.Context, schemaName, tableName string) ([]datasource.ConstraintRow, error) {
	const query = `
		SELECT
			tc.constraint_name,
			tc.constraint_type,
			ARRAY(
				SELECT kcu.column_name
				FROM information_schema.key_column_usage kcu
				WHERE kcu.constraint_name = tc.constraint_name
				  AND kcu.table_schema = tc.table_schema
				ORDER BY kcu.ordinal_position
			) AS column_names,
			COALESCE(ccu.table_name, '') AS referenced_table,
			ARRAY(
				SELECT DISTINCT ccu2.column_name
				FROM information_schema.constraint_column_usage ccu2
				WHERE ccu2.constraint_name = tc.constraint_name
				  AND tc.constraint_type = 'FOREIGN KEY'
			) AS referenced_columns
		FROM information_schema.table_constraints tc
		LEFT JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND tc.constraint_type = 'FOREIGN KEY'
		WHERE tc.table_schema = $1 AND tc.table_name = $2
		ORDER BY tc.constraint_name
	`

	return retry.DoWithResult(ctx, r.retryCfg, func() ([]datasource.ConstraintRow, error) {
		rows, err := r.pool.Query(ctx, query, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("query constraints: %w", err)
		}
		defer rows.Close()

		var out []datasource.ConstraintRow
		for rows.Next() {
			var c datasource.ConstraintRow
			if err := rows.Scan(&c.ConstraintName, &c.ConstraintType, &c.ColumnNames, &c.ReferencedTable, &c.ReferencedColumns); err != nil {
				return nil, fmt.Errorf("scan constraint: %w", err)
			}
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate constraints: %w", err)
		}
		return out, nil
	})
}

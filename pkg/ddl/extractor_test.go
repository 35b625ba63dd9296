package ddl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/pkg/apperrors"
	"github.com/schemalens/schemalens/pkg/models"
)

func TestExtractHeaderFailure(t *testing.T) {
	tests := []struct {
		name string
		ddl  string
	}{
		{"empty input", ""},
		{"not a create statement", "DROP TABLE customers"},
		{"select statement", "SELECT * FROM customers"},
		{"create without kind", "CREATE SOMETHING foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.ddl)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrNoStatementHeader)
			assert.True(t, apperrors.IsParseError(err))
		})
	}
}

func TestExtractCreateTable(t *testing.T) {
	ddl := `CREATE TABLE dbo.Customer (
		CustomerId int PRIMARY KEY,
		Email varchar(100) NOT NULL,
		CreatedDate datetime DEFAULT NULL
	)`

	ex, err := Extract(ddl)
	require.NoError(t, err)

	assert.Equal(t, models.KindTable, ex.Kind)
	assert.Equal(t, "dbo", ex.SchemaName)
	assert.Equal(t, "Customer", ex.Name)
	require.Len(t, ex.Columns, 3)
	assert.Empty(t, ex.Unparsed)

	id := ex.Columns[0]
	assert.Equal(t, "CustomerId", id.Name)
	assert.Equal(t, "int", id.TypeToken)
	assert.True(t, id.PrimaryKey)
	assert.False(t, id.Nullable, "inline primary key implies NOT NULL")

	email := ex.Columns[1]
	assert.Equal(t, "Email", email.Name)
	assert.Equal(t, "varchar(100)", email.TypeToken)
	assert.False(t, email.Nullable)
	assert.False(t, email.HasDefault)

	created := ex.Columns[2]
	assert.Equal(t, "CreatedDate", created.Name)
	assert.True(t, created.Nullable, "DEFAULT NULL must not be read as NOT NULL")
	assert.True(t, created.HasDefault)
	assert.Nil(t, created.Default)
}

func TestExtractQuotedIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		ddl        string
		wantSchema string
		wantName   string
		wantCol    string
	}{
		{
			name:       "bracket quoted",
			ddl:        `CREATE TABLE [dbo].[Order Details] ([Order Id] int NOT NULL)`,
			wantSchema: "dbo",
			wantName:   "Order Details",
			wantCol:    "Order Id",
		},
		{
			name:       "double quoted",
			ddl:        `CREATE TABLE "public"."users" ("user name" text)`,
			wantSchema: "public",
			wantName:   "users",
			wantCol:    "user name",
		},
		{
			name:     "backtick quoted column",
			ddl:      "CREATE TABLE orders (`order_key` bigint)",
			wantName: "orders",
			wantCol:  "order_key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := Extract(tt.ddl)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSchema, ex.SchemaName)
			assert.Equal(t, tt.wantName, ex.Name)
			require.NotEmpty(t, ex.Columns)
			assert.Equal(t, tt.wantCol, ex.Columns[0].Name)
		})
	}
}

func TestExtractKinds(t *testing.T) {
	tests := []struct {
		ddl  string
		want models.SchemaKind
	}{
		{"CREATE TABLE t (a int)", models.KindTable},
		{"CREATE VIEW v (a int)", models.KindView},
		{"CREATE OR REPLACE VIEW v (a int)", models.KindView},
		{"CREATE PROCEDURE p", models.KindStoredProcedure},
		{"CREATE PROC p", models.KindStoredProcedure},
		{"CREATE FUNCTION f", models.KindFunction},
		{"CREATE INDEX ix ON t (a)", models.KindIndex},
	}
	for _, tt := range tests {
		t.Run(tt.ddl, func(t *testing.T) {
			ex, err := Extract(tt.ddl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ex.Kind)
		})
	}
}

func TestExtractIndexes(t *testing.T) {
	tests := []struct {
		name     string
		ddl      string
		wantType models.IndexType
		wantUniq bool
	}{
		{
			name:     "plain index defaults to nonclustered",
			ddl:      "CREATE INDEX ix_name ON t (a, b)",
			wantType: models.IndexNonClustered,
		},
		{
			name:     "unique index",
			ddl:      "CREATE UNIQUE INDEX ix_name ON t (a)",
			wantType: models.IndexUnique,
			wantUniq: true,
		},
		{
			name:     "clustered wins over unique",
			ddl:      "CREATE UNIQUE CLUSTERED INDEX ix_name ON t (a)",
			wantType: models.IndexClustered,
			wantUniq: true,
		},
		{
			name:     "nonclustered explicit",
			ddl:      "CREATE NONCLUSTERED INDEX ix_name ON dbo.t (a DESC)",
			wantType: models.IndexNonClustered,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := Extract(tt.ddl)
			require.NoError(t, err)
			require.Len(t, ex.Indexes, 1)
			idx := ex.Indexes[0]
			assert.Equal(t, "ix_name", idx.Name)
			assert.Equal(t, tt.wantType, idx.Type)
			assert.Equal(t, tt.wantUniq, idx.IsUnique)
		})
	}
}

func TestExtractIndexColumnsDropSortOrder(t *testing.T) {
	ex, err := Extract("CREATE INDEX ix ON t (a ASC, [b] DESC, c)")
	require.NoError(t, err)
	require.Len(t, ex.Indexes, 1)
	assert.Equal(t, []string{"a", "b", "c"}, ex.Indexes[0].Columns)
}

func TestExtractConstraints(t *testing.T) {
	ddl := `CREATE TABLE orders (
		order_id int,
		user_id int,
		total decimal(10,2),
		CONSTRAINT pk_orders PRIMARY KEY (order_id),
		CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT uq_orders_total UNIQUE (total),
		CONSTRAINT ck_orders_total CHECK (total >= 0)
	)`

	ex, err := Extract(ddl)
	require.NoError(t, err)
	require.Len(t, ex.Constraints, 4)
	assert.Empty(t, ex.Unparsed)

	pk := ex.Constraints[0]
	assert.Equal(t, "pk_orders", pk.Name)
	assert.Equal(t, models.ConstraintPrimaryKey, pk.Type)
	assert.Equal(t, []string{"order_id"}, pk.Columns)

	fk := ex.Constraints[1]
	assert.Equal(t, models.ConstraintForeignKey, fk.Type)
	assert.Equal(t, []string{"user_id"}, fk.Columns)
	assert.Equal(t, "users", fk.ReferencedTable)
	assert.Equal(t, []string{"id"}, fk.ReferencedColumns)

	uq := ex.Constraints[2]
	assert.Equal(t, models.ConstraintUnique, uq.Type)
	assert.Equal(t, []string{"total"}, uq.Columns)

	ck := ex.Constraints[3]
	assert.Equal(t, models.ConstraintCheck, ck.Type)
	assert.Empty(t, ck.Columns, "check expressions are not column lists")
	assert.Contains(t, ck.Definition, "CHECK")
}

func TestExtractUnparsedFragments(t *testing.T) {
	// Unnamed table-level keys and LIKE clauses are outside the documented
	// subset; they must be reported, not silently dropped.
	ddl := `CREATE TABLE t (
		a int,
		PRIMARY KEY (a),
		LIKE template_table,
		b text
	)`

	ex, err := Extract(ddl)
	require.NoError(t, err)
	require.Len(t, ex.Columns, 2)
	require.Len(t, ex.Unparsed, 2)
	assert.Contains(t, ex.Unparsed[0], "PRIMARY KEY")
	assert.Contains(t, ex.Unparsed[1], "LIKE template_table")
}

func TestExtractDefaults(t *testing.T) {
	tests := []struct {
		name    string
		clause  string
		want    any
		nullCol bool
	}{
		{"string literal", "varchar(10) DEFAULT 'n/a'", "n/a", true},
		{"escaped quote", "varchar(10) DEFAULT 'it''s'", "it's", true},
		{"integer literal", "int DEFAULT 42", float64(42), true},
		{"negative decimal", "decimal(5,2) DEFAULT -1.5", float64(-1.5), true},
		{"boolean", "boolean DEFAULT true", true, true},
		{"function call", "timestamp DEFAULT CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP", true},
		{"parenthesized expression", "int DEFAULT (1+2)", "(1+2)", true},
		{"default before not null", "int DEFAULT 0 NOT NULL", float64(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := Extract(fmt.Sprintf("CREATE TABLE t (c %s)", tt.clause))
			require.NoError(t, err)
			require.Len(t, ex.Columns, 1)
			col := ex.Columns[0]
			assert.True(t, col.HasDefault)
			assert.Equal(t, tt.want, col.Default)
			assert.Equal(t, tt.nullCol, col.Nullable)
		})
	}
}

func TestParseDefaultLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"'hello'", "hello"},
		{"'o''brien'", "o'brien"},
		{`"quoted"`, "quoted"},
		{"123", float64(123)},
		{"-4.25", float64(-4.25)},
		{"TRUE", true},
		{"False", false},
		{"NULL", nil},
		{"nextval('seq')", "nextval('seq')"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDefaultLiteral(tt.raw), "raw %q", tt.raw)
	}
}

func TestExtractManyColumns(t *testing.T) {
	var b strings.Builder
	b.WriteString("CREATE TABLE wide (")
	for i := 0; i < 50; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "col_%02d int", i)
	}
	b.WriteString(")")

	ex, err := Extract(b.String())
	require.NoError(t, err)
	assert.Len(t, ex.Columns, 50)
	assert.Empty(t, ex.Unparsed)
	for i, col := range ex.Columns {
		assert.Equal(t, fmt.Sprintf("col_%02d", i), col.Name)
	}
}

func TestNormalize(t *testing.T) {
	in := "  CREATE\tTABLE\n\n  t   (a int)  "
	assert.Equal(t, "CREATE TABLE t (a int)", Normalize(in))
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"[name]", "name"},
		{`"name"`, "name"},
		{"`name`", "name"},
		{"name", "name"},
		{"", ""},
		{"[", "["},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Unquote(tt.in))
	}
}

func TestExtractCommaInStringDefault(t *testing.T) {
	ex, err := Extract("CREATE TABLE t (a varchar(20) DEFAULT 'x,y', b int)")
	require.NoError(t, err)
	require.Len(t, ex.Columns, 2)
	assert.Equal(t, "x,y", ex.Columns[0].Default)
	assert.Equal(t, "b", ex.Columns[1].Name)
}

func TestExtractionString(t *testing.T) {
	ex, err := Extract("CREATE TABLE t (a int, b text)")
	require.NoError(t, err)
	s := ex.String()
	assert.Contains(t, s, "TABLE t")
	assert.Contains(t, s, "2 columns")
}

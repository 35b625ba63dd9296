package datasource

// TableRow is an introspected table record, shaped like an
// information-schema-style query result.
type TableRow struct {
	TableSchema string `json:"table_schema"`
	TableName   string `json:"table_name"`
	TableType   string `json:"table_type,omitempty"`
	RowCount    int64  `json:"row_count"`
}

// ColumnRow is an introspected column record with snake_case fields matching
// common catalog views. It is the raw input to the metadata-rows parse path.
type ColumnRow struct {
	ColumnName             string  `json:"column_name"`
	DataType               string  `json:"data_type"`
	IsNullable             bool    `json:"is_nullable"`
	IsPrimaryKey           bool    `json:"is_primary_key"`
	IsForeignKey           bool    `json:"is_foreign_key"`
	IsUnique               bool    `json:"is_unique"`
	OrdinalPosition        int     `json:"ordinal_position"`
	ColumnDefault          *string `json:"column_default,omitempty"`
	CharacterMaximumLength *int    `json:"character_maximum_length,omitempty"`
	NumericPrecision       *int    `json:"numeric_precision,omitempty"`
	NumericScale           *int    `json:"numeric_scale,omitempty"`
	Description            *string `json:"description,omitempty"`
}

// IndexRow is an introspected index record.
type IndexRow struct {
	IndexName    string   `json:"index_name"`
	IndexType    string   `json:"index_type,omitempty"`
	ColumnNames  []string `json:"column_names"`
	IsUnique     bool     `json:"is_unique"`
	IsPrimaryKey bool     `json:"is_primary_key"`
	SizeBytes    *int64   `json:"size_bytes,omitempty"`
	ScanCount    *int64   `json:"scan_count,omitempty"`
}

// ConstraintRow is an introspected constraint record.
type ConstraintRow struct {
	ConstraintName    string   `json:"constraint_name"`
	ConstraintType    string   `json:"constraint_type"`
	ColumnNames       []string `json:"column_names"`
	ReferencedTable   string   `json:"referenced_table,omitempty"`
	ReferencedColumns []string `json:"referenced_columns,omitempty"`
	Definition        string   `json:"definition,omitempty"`
}

// TableRows bundles everything introspected for one table.
type TableRows struct {
	Table       TableRow        `json:"table"`
	Columns     []ColumnRow     `json:"columns"`
	Indexes     []IndexRow      `json:"indexes,omitempty"`
	Constraints []ConstraintRow `json:"constraints,omitempty"`
}

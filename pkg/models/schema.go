package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Data Type Categories
// ============================================================================

// DataTypeCategory is the semantic classification a raw vendor type maps to.
type DataTypeCategory string

const (
	CategoryString   DataTypeCategory = "STRING"
	CategoryNumeric  DataTypeCategory = "NUMERIC"
	CategoryTemporal DataTypeCategory = "TEMPORAL"
	CategoryBoolean  DataTypeCategory = "BOOLEAN"
	CategoryBinary   DataTypeCategory = "BINARY"
	CategoryJSON     DataTypeCategory = "JSON"
	CategorySpatial  DataTypeCategory = "SPATIAL"
	CategoryUUID     DataTypeCategory = "UUID"
	CategoryOther    DataTypeCategory = "OTHER"
)

// ValidDataTypeCategories contains all valid category values.
var ValidDataTypeCategories = []DataTypeCategory{
	CategoryString,
	CategoryNumeric,
	CategoryTemporal,
	CategoryBoolean,
	CategoryBinary,
	CategoryJSON,
	CategorySpatial,
	CategoryUUID,
	CategoryOther,
}

// IsValidDataTypeCategory checks if the given category is valid.
func IsValidDataTypeCategory(c DataTypeCategory) bool {
	return slices.Contains(ValidDataTypeCategories, c)
}

// ParseDataTypeCategory maps a string to a category, case-insensitively.
// Unknown values map to CategoryOther.
func ParseDataTypeCategory(s string) DataTypeCategory {
	c := DataTypeCategory(strings.ToUpper(strings.TrimSpace(s)))
	if IsValidDataTypeCategory(c) {
		return c
	}
	return CategoryOther
}

// DataType is the classified form of a raw vendor type token.
// MaxLength carries the single numeric parameter of types like varchar(255);
// Precision and Scale carry the two parameters of types like decimal(10,2).
type DataType struct {
	Name      string           `json:"name"`
	Category  DataTypeCategory `json:"category"`
	MaxLength *int             `json:"max_length,omitempty"`
	Precision *int             `json:"precision,omitempty"`
	Scale     *int             `json:"scale,omitempty"`
}

// ============================================================================
// Schema Kinds
// ============================================================================

// SchemaKind identifies the kind of relational object a schema describes.
type SchemaKind string

const (
	KindTable           SchemaKind = "TABLE"
	KindView            SchemaKind = "VIEW"
	KindStoredProcedure SchemaKind = "STORED_PROCEDURE"
	KindFunction        SchemaKind = "FUNCTION"
	KindIndex           SchemaKind = "INDEX"
)

// ValidSchemaKinds contains all valid schema kind values.
var ValidSchemaKinds = []SchemaKind{
	KindTable,
	KindView,
	KindStoredProcedure,
	KindFunction,
	KindIndex,
}

// IsValidSchemaKind checks if the given kind is valid.
func IsValidSchemaKind(k SchemaKind) bool {
	return slices.Contains(ValidSchemaKinds, k)
}

// ============================================================================
// Columns
// ============================================================================

// ParsedColumn is a canonical column record. All three input paths (DDL, JSON
// document, catalog metadata rows) converge to this shape.
type ParsedColumn struct {
	Name         string   `json:"name"`
	DataType     DataType `json:"data_type"`
	IsNullable   bool     `json:"is_nullable"`
	IsPrimaryKey bool     `json:"is_primary_key"`
	IsForeignKey bool     `json:"is_foreign_key"`
	IsUnique     bool     `json:"is_unique"`
	DefaultValue any      `json:"default_value,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	// QualityScore is a deterministic heuristic in [0,1], not measured quality.
	QualityScore float64 `json:"quality_score"`
}

// HasTag reports whether the column carries the given tag.
func (c *ParsedColumn) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// ============================================================================
// Indexes
// ============================================================================

// IndexType identifies the physical index variant.
type IndexType string

const (
	IndexClustered    IndexType = "CLUSTERED"
	IndexNonClustered IndexType = "NONCLUSTERED"
	IndexUnique       IndexType = "UNIQUE"
	IndexBitmap       IndexType = "BITMAP"
	IndexHash         IndexType = "HASH"
)

// ValidIndexTypes contains all valid index type values.
var ValidIndexTypes = []IndexType{
	IndexClustered,
	IndexNonClustered,
	IndexUnique,
	IndexBitmap,
	IndexHash,
}

// IsValidIndexType checks if the given index type is valid.
func IsValidIndexType(t IndexType) bool {
	return slices.Contains(ValidIndexTypes, t)
}

// ParsedIndex is a canonical index record. Columns preserves key order.
type ParsedIndex struct {
	Name         string    `json:"name"`
	Type         IndexType `json:"type"`
	Columns      []string  `json:"columns"`
	IsUnique     bool      `json:"is_unique"`
	IsPrimaryKey bool      `json:"is_primary_key"`
	SizeBytes    *int64    `json:"size_bytes,omitempty"`
	ScanCount    *int64    `json:"scan_count,omitempty"`
}

// ============================================================================
// Constraints
// ============================================================================

// ConstraintType identifies the constraint variant.
type ConstraintType string

const (
	ConstraintPrimaryKey ConstraintType = "PRIMARY_KEY"
	ConstraintForeignKey ConstraintType = "FOREIGN_KEY"
	ConstraintUnique     ConstraintType = "UNIQUE"
	ConstraintCheck      ConstraintType = "CHECK"
	ConstraintNotNull    ConstraintType = "NOT_NULL"
	ConstraintDefault    ConstraintType = "DEFAULT"
)

// ValidConstraintTypes contains all valid constraint type values.
var ValidConstraintTypes = []ConstraintType{
	ConstraintPrimaryKey,
	ConstraintForeignKey,
	ConstraintUnique,
	ConstraintCheck,
	ConstraintNotNull,
	ConstraintDefault,
}

// IsValidConstraintType checks if the given constraint type is valid.
func IsValidConstraintType(t ConstraintType) bool {
	return slices.Contains(ValidConstraintTypes, t)
}

// ParsedConstraint is a canonical constraint record.
type ParsedConstraint struct {
	Name              string         `json:"name"`
	Type              ConstraintType `json:"type"`
	Columns           []string       `json:"columns"`
	ReferencedTable   string         `json:"referenced_table,omitempty"`
	ReferencedColumns []string       `json:"referenced_columns,omitempty"`
	Definition        string         `json:"definition,omitempty"`
}

// ============================================================================
// Relationships
// ============================================================================

// Relationship types.
const (
	RelationshipTypeFK       = "fk"
	RelationshipTypeInferred = "inferred"
	RelationshipTypeManual   = "manual"
)

// SchemaRelationship links a local column to a referenced table column.
// Declared relationships come from FOREIGN_KEY constraints; inferred ones come
// from naming-pattern enrichment and carry a confidence below 1.0.
type SchemaRelationship struct {
	SourceColumn string  `json:"source_column"`
	TargetTable  string  `json:"target_table"`
	TargetColumn string  `json:"target_column"`
	Type         string  `json:"type"`
	Confidence   float64 `json:"confidence"`
}

// ============================================================================
// Metadata & Statistics
// ============================================================================

// PartitionInfo describes table partitioning, when known.
type PartitionInfo struct {
	Strategy string   `json:"strategy,omitempty"`
	Keys     []string `json:"keys,omitempty"`
	Count    int      `json:"count,omitempty"`
}

// SchemaMetadata carries descriptive facts about the parsed object.
type SchemaMetadata struct {
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	ModifiedAt   *time.Time     `json:"modified_at,omitempty"`
	Owner        string         `json:"owner,omitempty"`
	SchemaName   string         `json:"schema_name,omitempty"`
	DatabaseName string         `json:"database_name,omitempty"`
	CatalogName  string         `json:"catalog_name,omitempty"`
	RowCount     *int64         `json:"row_count,omitempty"`
	SizeBytes    *int64         `json:"size_bytes,omitempty"`
	Partition    *PartitionInfo `json:"partition,omitempty"`
}

// SchemaStatistics is the per-schema rollup of column and index facts.
type SchemaStatistics struct {
	ColumnCount           int `json:"column_count"`
	IndexCount            int `json:"index_count"`
	PrimaryKeyCount       int `json:"primary_key_count"`
	ForeignKeyCount       int `json:"foreign_key_count"`
	UniqueConstraintCount int `json:"unique_constraint_count"`
	NullableColumnCount   int `json:"nullable_column_count"`
	// AverageQualityScore is 0 (never NaN) when ColumnCount is 0.
	AverageQualityScore  float64                  `json:"average_quality_score"`
	DataTypeDistribution map[DataTypeCategory]int `json:"data_type_distribution,omitempty"`
}

// ============================================================================
// Parsed Schema
// ============================================================================

// ParsedSchema is the canonical schema model. It is built once per parse call
// and treated as immutable afterwards; enrichment returns a new value.
type ParsedSchema struct {
	ParseID       uuid.UUID            `json:"parse_id,omitempty"`
	Name          string               `json:"name"`
	Kind          SchemaKind           `json:"kind"`
	Columns       []ParsedColumn       `json:"columns"`
	Indexes       []ParsedIndex        `json:"indexes,omitempty"`
	Constraints   []ParsedConstraint   `json:"constraints,omitempty"`
	Relationships []SchemaRelationship `json:"relationships,omitempty"`
	Metadata      SchemaMetadata       `json:"metadata"`
	Statistics    SchemaStatistics     `json:"statistics"`
}

// Clone returns a deep copy of the schema. Nil slices stay nil so a clone
// compares equal to its source.
func (s *ParsedSchema) Clone() *ParsedSchema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Columns != nil {
		out.Columns = make([]ParsedColumn, len(s.Columns))
		for i, c := range s.Columns {
			out.Columns[i] = c
			out.Columns[i].Tags = slices.Clone(c.Tags)
			out.Columns[i].DataType.MaxLength = cloneIntPtr(c.DataType.MaxLength)
			out.Columns[i].DataType.Precision = cloneIntPtr(c.DataType.Precision)
			out.Columns[i].DataType.Scale = cloneIntPtr(c.DataType.Scale)
		}
	}
	if s.Indexes != nil {
		out.Indexes = make([]ParsedIndex, len(s.Indexes))
		for i, ix := range s.Indexes {
			out.Indexes[i] = ix
			out.Indexes[i].Columns = slices.Clone(ix.Columns)
			out.Indexes[i].SizeBytes = cloneInt64Ptr(ix.SizeBytes)
			out.Indexes[i].ScanCount = cloneInt64Ptr(ix.ScanCount)
		}
	}
	if s.Constraints != nil {
		out.Constraints = make([]ParsedConstraint, len(s.Constraints))
		for i, c := range s.Constraints {
			out.Constraints[i] = c
			out.Constraints[i].Columns = slices.Clone(c.Columns)
			out.Constraints[i].ReferencedColumns = slices.Clone(c.ReferencedColumns)
		}
	}
	out.Relationships = slices.Clone(s.Relationships)
	out.Metadata = s.Metadata
	out.Metadata.CreatedAt = cloneTimePtr(s.Metadata.CreatedAt)
	out.Metadata.ModifiedAt = cloneTimePtr(s.Metadata.ModifiedAt)
	out.Metadata.RowCount = cloneInt64Ptr(s.Metadata.RowCount)
	out.Metadata.SizeBytes = cloneInt64Ptr(s.Metadata.SizeBytes)
	if s.Metadata.Partition != nil {
		p := *s.Metadata.Partition
		p.Keys = slices.Clone(s.Metadata.Partition.Keys)
		out.Metadata.Partition = &p
	}
	if s.Statistics.DataTypeDistribution != nil {
		out.Statistics.DataTypeDistribution = make(map[DataTypeCategory]int, len(s.Statistics.DataTypeDistribution))
		for k, v := range s.Statistics.DataTypeDistribution {
			out.Statistics.DataTypeDistribution[k] = v
		}
	}
	return &out
}

// WithMetadata returns a copy of the schema with the given metadata applied.
// The receiver is never mutated.
func (s *ParsedSchema) WithMetadata(md SchemaMetadata) *ParsedSchema {
	out := s.Clone()
	out.Metadata = md
	return out
}

// WithStatistics returns a copy of the schema with the given statistics applied.
// The receiver is never mutated.
func (s *ParsedSchema) WithStatistics(stats SchemaStatistics) *ParsedSchema {
	out := s.Clone()
	out.Statistics = stats
	return out
}

// Column returns the column with the given name (exact match), or nil.
func (s *ParsedSchema) Column(name string) *ParsedColumn {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// ============================================================================
// Validation Result
// ============================================================================

// SchemaValidationResult is the advisory output of the structural validator.
// It is returned alongside a ParsedSchema, never embedded in it.
type SchemaValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

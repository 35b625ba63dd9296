package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSchema() *ParsedSchema {
	maxLen := 100
	rowCount := int64(42)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ParsedSchema{
		Name: "customers",
		Kind: KindTable,
		Columns: []ParsedColumn{
			{
				Name:         "id",
				DataType:     DataType{Name: "bigint", Category: CategoryNumeric},
				IsPrimaryKey: true,
				Tags:         []string{"numeric", "identifier"},
				QualityScore: 0.8,
			},
			{
				Name:       "email",
				DataType:   DataType{Name: "varchar", Category: CategoryString, MaxLength: &maxLen},
				IsNullable: true,
				IsUnique:   true,
			},
		},
		Indexes: []ParsedIndex{
			{Name: "ix_email", Type: IndexUnique, Columns: []string{"email"}, IsUnique: true},
		},
		Constraints: []ParsedConstraint{
			{Name: "pk_customers", Type: ConstraintPrimaryKey, Columns: []string{"id"}},
		},
		Metadata: SchemaMetadata{
			SchemaName: "public",
			RowCount:   &rowCount,
			CreatedAt:  &now,
			Partition:  &PartitionInfo{Strategy: "range", Keys: []string{"created_at"}, Count: 12},
		},
		Statistics: SchemaStatistics{
			ColumnCount:          2,
			DataTypeDistribution: map[DataTypeCategory]int{CategoryNumeric: 1, CategoryString: 1},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleSchema()
	clone := original.Clone()

	require.Equal(t, original, clone)

	clone.Columns[0].Tags[0] = "mutated"
	*clone.Columns[1].DataType.MaxLength = 999
	clone.Indexes[0].Columns[0] = "mutated"
	clone.Constraints[0].Columns[0] = "mutated"
	*clone.Metadata.RowCount = 0
	clone.Metadata.Partition.Keys[0] = "mutated"
	clone.Statistics.DataTypeDistribution[CategoryNumeric] = 99

	assert.Equal(t, "numeric", original.Columns[0].Tags[0])
	assert.Equal(t, 100, *original.Columns[1].DataType.MaxLength)
	assert.Equal(t, "email", original.Indexes[0].Columns[0])
	assert.Equal(t, "id", original.Constraints[0].Columns[0])
	assert.Equal(t, int64(42), *original.Metadata.RowCount)
	assert.Equal(t, "created_at", original.Metadata.Partition.Keys[0])
	assert.Equal(t, 1, original.Statistics.DataTypeDistribution[CategoryNumeric])
}

func TestCloneNil(t *testing.T) {
	var s *ParsedSchema
	assert.Nil(t, s.Clone())
}

func TestClonePreservesNilSlices(t *testing.T) {
	original := &ParsedSchema{Name: "bare", Kind: KindTable}
	clone := original.Clone()

	assert.Nil(t, clone.Columns)
	assert.Nil(t, clone.Indexes)
	assert.Nil(t, clone.Constraints)
	assert.Nil(t, clone.Relationships)
	assert.Equal(t, original, clone)
}

func TestWithMetadataDoesNotMutateReceiver(t *testing.T) {
	original := sampleSchema()
	updated := original.WithMetadata(SchemaMetadata{SchemaName: "analytics", CatalogName: "warehouse"})

	assert.Equal(t, "public", original.Metadata.SchemaName)
	assert.Equal(t, "analytics", updated.Metadata.SchemaName)
	assert.Equal(t, "warehouse", updated.Metadata.CatalogName)
	assert.Equal(t, original.Columns, updated.Columns)
}

func TestWithStatisticsDoesNotMutateReceiver(t *testing.T) {
	original := sampleSchema()
	updated := original.WithStatistics(SchemaStatistics{ColumnCount: 7})

	assert.Equal(t, 2, original.Statistics.ColumnCount)
	assert.Equal(t, 7, updated.Statistics.ColumnCount)
}

func TestColumnLookup(t *testing.T) {
	s := sampleSchema()

	require.NotNil(t, s.Column("email"))
	assert.Nil(t, s.Column("Email"), "lookup is exact-match")
	assert.Nil(t, s.Column("missing"))
}

func TestHasTag(t *testing.T) {
	col := &ParsedColumn{Tags: []string{"numeric", "identifier"}}
	assert.True(t, col.HasTag("identifier"))
	assert.False(t, col.HasTag("email"))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidDataTypeCategory(CategoryString))
	assert.False(t, IsValidDataTypeCategory("VARCHAR"))

	assert.True(t, IsValidSchemaKind(KindStoredProcedure))
	assert.False(t, IsValidSchemaKind("MATERIALIZED_VIEW"))

	assert.True(t, IsValidIndexType(IndexBitmap))
	assert.False(t, IsValidIndexType("BTREE"))

	assert.True(t, IsValidConstraintType(ConstraintNotNull))
	assert.False(t, IsValidConstraintType("EXCLUSION"))
}

func TestParseDataTypeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want DataTypeCategory
	}{
		{"string", CategoryString},
		{" NUMERIC ", CategoryNumeric},
		{"Temporal", CategoryTemporal},
		{"varchar", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDataTypeCategory(tt.in), "input %q", tt.in)
	}
}

func TestSchemaDeltaHasChanges(t *testing.T) {
	assert.False(t, (&SchemaDelta{}).HasChanges())
	assert.True(t, (&SchemaDelta{AddedColumns: []ParsedColumn{{Name: "a"}}}).HasChanges())
	assert.True(t, (&SchemaDelta{RemovedIndexes: []ParsedIndex{{Name: "ix"}}}).HasChanges())
	assert.True(t, (&SchemaDelta{ModifiedColumns: []ColumnModification{{Name: "a"}}}).HasChanges())
}

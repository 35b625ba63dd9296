package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalens/schemalens/pkg/models"
)

func TestComputeStatistics(t *testing.T) {
	columns := []models.ParsedColumn{
		{Name: "id", DataType: models.DataType{Category: models.CategoryNumeric}, IsPrimaryKey: true, QualityScore: 0.8},
		{Name: "user_id", DataType: models.DataType{Category: models.CategoryNumeric}, IsForeignKey: true, IsNullable: true, QualityScore: 0.9},
		{Name: "email", DataType: models.DataType{Category: models.CategoryString}, IsUnique: true, QualityScore: 0.7},
	}
	indexes := []models.ParsedIndex{
		{Name: "pk", Type: models.IndexClustered},
		{Name: "ix_email", Type: models.IndexUnique},
	}

	stats := ComputeStatistics(columns, indexes)

	assert.Equal(t, 3, stats.ColumnCount)
	assert.Equal(t, 2, stats.IndexCount)
	assert.Equal(t, 1, stats.PrimaryKeyCount)
	assert.Equal(t, 1, stats.ForeignKeyCount)
	assert.Equal(t, 1, stats.UniqueConstraintCount)
	assert.Equal(t, 1, stats.NullableColumnCount)
	assert.InDelta(t, 0.8, stats.AverageQualityScore, 1e-9)
	assert.Equal(t, 2, stats.DataTypeDistribution[models.CategoryNumeric])
	assert.Equal(t, 1, stats.DataTypeDistribution[models.CategoryString])
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, nil)

	assert.Zero(t, stats.ColumnCount)
	assert.Equal(t, 0.0, stats.AverageQualityScore)
	assert.False(t, math.IsNaN(stats.AverageQualityScore), "empty schema must not divide by zero")
}

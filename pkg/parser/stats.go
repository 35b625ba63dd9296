package parser

import (
	"github.com/schemalens/schemalens/pkg/models"
)

// ComputeStatistics rolls column and index facts up into schema-level counts
// and the data-type category distribution. The average quality score of an
// empty column list is 0, never NaN.
func ComputeStatistics(columns []models.ParsedColumn, indexes []models.ParsedIndex) models.SchemaStatistics {
	stats := models.SchemaStatistics{
		ColumnCount:          len(columns),
		IndexCount:           len(indexes),
		DataTypeDistribution: make(map[models.DataTypeCategory]int),
	}

	var scoreSum float64
	for _, col := range columns {
		if col.IsPrimaryKey {
			stats.PrimaryKeyCount++
		}
		if col.IsForeignKey {
			stats.ForeignKeyCount++
		}
		if col.IsUnique {
			stats.UniqueConstraintCount++
		}
		if col.IsNullable {
			stats.NullableColumnCount++
		}
		scoreSum += col.QualityScore
		stats.DataTypeDistribution[col.DataType.Category]++
	}

	if stats.ColumnCount > 0 {
		stats.AverageQualityScore = scoreSum / float64(stats.ColumnCount)
	}
	return stats
}

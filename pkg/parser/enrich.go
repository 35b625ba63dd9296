package parser

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/models"
)

// inferredFKConfidence is deliberately low: naming is a hint, not evidence.
const inferredFKConfidence = 0.4

// enrich derives additional metadata from what the schema already states:
// relationships declared by FOREIGN_KEY constraints, plus relationships
// suggested by <entity>_id column naming. The input schema is never mutated;
// enrichment builds a new value.
func (p *SchemaParser) enrich(schema *models.ParsedSchema) *models.ParsedSchema {
	md := schema.Metadata
	if md.SchemaName != "" && md.CatalogName == "" {
		md.CatalogName = md.SchemaName
	}
	out := schema.WithMetadata(md)

	for _, cons := range out.Constraints {
		if cons.Type != models.ConstraintForeignKey || cons.ReferencedTable == "" {
			continue
		}
		for i, colName := range cons.Columns {
			ref := ""
			if i < len(cons.ReferencedColumns) {
				ref = cons.ReferencedColumns[i]
			}
			out.Relationships = appendRelationship(out.Relationships, models.SchemaRelationship{
				SourceColumn: colName,
				TargetTable:  cons.ReferencedTable,
				TargetColumn: ref,
				Type:         models.RelationshipTypeFK,
				Confidence:   1.0,
			})
		}
	}

	for i := range out.Columns {
		col := &out.Columns[i]
		target, ok := suggestedFKTarget(col)
		if !ok {
			continue
		}
		out.Relationships = appendRelationship(out.Relationships, models.SchemaRelationship{
			SourceColumn: col.Name,
			TargetTable:  target,
			TargetColumn: "id",
			Type:         models.RelationshipTypeInferred,
			Confidence:   inferredFKConfidence,
		})
		if col.Description == "" {
			col.Description = fmt.Sprintf("possible reference to %s(id)", target)
		}
		p.logger.Debug("inferred relationship from column naming",
			zap.String("column", col.Name),
			zap.String("target_table", target),
		)
	}

	return out
}

// suggestedFKTarget maps a column named <entity>_id to the pluralized entity
// table it likely references (user_id -> users). Primary keys and columns
// already covered by a declared foreign key are left alone.
func suggestedFKTarget(col *models.ParsedColumn) (string, bool) {
	if col.IsPrimaryKey || col.IsForeignKey {
		return "", false
	}
	lower := strings.ToLower(col.Name)
	if !strings.HasSuffix(lower, "_id") || len(lower) <= len("_id") {
		return "", false
	}
	entity := lower[:len(lower)-len("_id")]
	return inflection.Plural(entity), true
}

func appendRelationship(rels []models.SchemaRelationship, rel models.SchemaRelationship) []models.SchemaRelationship {
	for _, existing := range rels {
		if strings.EqualFold(existing.SourceColumn, rel.SourceColumn) &&
			strings.EqualFold(existing.TargetTable, rel.TargetTable) {
			return rels
		}
	}
	return append(rels, rel)
}

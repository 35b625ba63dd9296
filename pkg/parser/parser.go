// Package parser normalizes three heterogeneous schema descriptions (raw DDL
// text, a loosely-typed JSON schema document, introspected catalog rows)
// into the canonical models.ParsedSchema, and runs the downstream pipeline
// stages (classification, scoring/tagging, statistics, validation,
// enrichment) over the result.
package parser

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schemalens/schemalens/pkg/adapters/datasource"
	"github.com/schemalens/schemalens/pkg/apperrors"
	"github.com/schemalens/schemalens/pkg/ddl"
	"github.com/schemalens/schemalens/pkg/models"
	"github.com/schemalens/schemalens/pkg/sqltype"
)

// DefaultMaxInputLength bounds DDL/JSON input size to keep repeated regex
// scanning over pathological inputs from dominating CPU.
const DefaultMaxInputLength = 1 << 20

// Result is the envelope returned by every parse entry point. Validation is
// populated only when the ValidateSchema toggle is on; it is advisory and
// never embedded in the schema itself.
type Result struct {
	ParseID    uuid.UUID                      `json:"parse_id"`
	Schema     *models.ParsedSchema           `json:"schema"`
	Validation *models.SchemaValidationResult `json:"validation,omitempty"`
	Unparsed   []string                       `json:"unparsed,omitempty"`
}

// SchemaParser converts raw schema descriptions into canonical values.
// Instances hold only immutable configuration and are safe for concurrent use.
type SchemaParser struct {
	opts       Options
	classifier *sqltype.Classifier
	logger     *zap.Logger
	maxInput   int
}

// New creates a SchemaParser. If classifier is nil the generic dialect table
// is used; if logger is nil a no-op logger is used.
func New(classifier *sqltype.Classifier, opts Options, logger *zap.Logger) *SchemaParser {
	if classifier == nil {
		classifier, _ = sqltype.ForDialect(sqltype.DialectGeneric)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaParser{
		opts:       opts,
		classifier: classifier,
		logger:     logger,
		maxInput:   DefaultMaxInputLength,
	}
}

// WithMaxInputLength returns a copy of the parser with a different input
// bound. Zero or negative restores the default.
func (p *SchemaParser) WithMaxInputLength(n int) *SchemaParser {
	out := *p
	if n <= 0 {
		n = DefaultMaxInputLength
	}
	out.maxInput = n
	return &out
}

// Options returns the parser's pipeline toggles.
func (p *SchemaParser) Options() Options {
	return p.opts
}

// ParseDDL extracts a canonical schema from a single CREATE statement.
// An unrecognizable statement header is the only hard failure; malformed
// fragments are reported through Result.Unparsed.
func (p *SchemaParser) ParseDDL(rawDDL string) (*Result, error) {
	if len(rawDDL) > p.maxInput {
		return nil, apperrors.NewParseError("ddl input too large", apperrors.ErrInputTooLarge)
	}

	ex, err := ddl.Extract(rawDDL)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("ddl extracted", zap.String("object", ex.Name), zap.String("summary", ex.String()))

	schema := &models.ParsedSchema{
		Name: ex.Name,
		Kind: ex.Kind,
		Metadata: models.SchemaMetadata{
			SchemaName: ex.SchemaName,
		},
	}

	schema.Columns = make([]models.ParsedColumn, 0, len(ex.Columns))
	for _, frag := range ex.Columns {
		if !p.opts.IncludeSystemColumns && isSystemColumn(frag.Name) {
			continue
		}
		col := models.ParsedColumn{
			Name:         frag.Name,
			DataType:     p.classifier.Classify(frag.TypeToken),
			IsNullable:   frag.Nullable,
			IsPrimaryKey: frag.PrimaryKey,
			IsUnique:     frag.Unique,
		}
		if frag.HasDefault {
			col.DefaultValue = frag.Default
		}
		schema.Columns = append(schema.Columns, col)
	}

	if p.opts.IncludeIndexes {
		for _, frag := range ex.Indexes {
			schema.Indexes = append(schema.Indexes, models.ParsedIndex{
				Name:     frag.Name,
				Type:     frag.Type,
				Columns:  frag.Columns,
				IsUnique: frag.IsUnique,
			})
		}
	}

	if p.opts.IncludeConstraints {
		for _, frag := range ex.Constraints {
			schema.Constraints = append(schema.Constraints, models.ParsedConstraint{
				Name:              frag.Name,
				Type:              frag.Type,
				Columns:           frag.Columns,
				ReferencedTable:   frag.ReferencedTable,
				ReferencedColumns: frag.ReferencedColumns,
				Definition:        frag.Definition,
			})
		}
	}

	return p.finalize(schema, ex.Unparsed, true), nil
}

// ParseMetadataRows builds a canonical schema from introspected catalog rows.
// The data_type field of each row is classified the same way DDL type tokens
// are.
func (p *SchemaParser) ParseMetadataRows(rows datasource.TableRows) (*Result, error) {
	schema := &models.ParsedSchema{
		Name: rows.Table.TableName,
		Kind: models.KindTable,
		Metadata: models.SchemaMetadata{
			SchemaName: rows.Table.TableSchema,
		},
	}
	if rows.Table.RowCount > 0 {
		rc := rows.Table.RowCount
		schema.Metadata.RowCount = &rc
	}
	if strings.EqualFold(rows.Table.TableType, "VIEW") {
		schema.Kind = models.KindView
	}

	schema.Columns = make([]models.ParsedColumn, 0, len(rows.Columns))
	for _, row := range rows.Columns {
		if !p.opts.IncludeSystemColumns && isSystemColumn(row.ColumnName) {
			continue
		}
		col := models.ParsedColumn{
			Name:         row.ColumnName,
			DataType:     p.classifier.Classify(row.DataType),
			IsNullable:   row.IsNullable,
			IsPrimaryKey: row.IsPrimaryKey,
			IsForeignKey: row.IsForeignKey,
			IsUnique:     row.IsUnique,
		}
		// Catalog length/precision facts win over anything parsed out of the
		// type token.
		if row.CharacterMaximumLength != nil {
			v := *row.CharacterMaximumLength
			col.DataType.MaxLength = &v
		}
		if row.NumericPrecision != nil {
			v := *row.NumericPrecision
			col.DataType.Precision = &v
		}
		if row.NumericScale != nil {
			v := *row.NumericScale
			col.DataType.Scale = &v
		}
		if row.ColumnDefault != nil {
			col.DefaultValue = ddl.ParseDefaultLiteral(*row.ColumnDefault)
		}
		if row.Description != nil {
			col.Description = *row.Description
		}
		schema.Columns = append(schema.Columns, col)
	}

	if p.opts.IncludeIndexes {
		for _, row := range rows.Indexes {
			idx := models.ParsedIndex{
				Name:         row.IndexName,
				Type:         indexTypeFromRow(row),
				Columns:      row.ColumnNames,
				IsUnique:     row.IsUnique,
				IsPrimaryKey: row.IsPrimaryKey,
				SizeBytes:    row.SizeBytes,
				ScanCount:    row.ScanCount,
			}
			schema.Indexes = append(schema.Indexes, idx)
		}
	}

	if p.opts.IncludeConstraints {
		for _, row := range rows.Constraints {
			schema.Constraints = append(schema.Constraints, models.ParsedConstraint{
				Name:              row.ConstraintName,
				Type:              constraintTypeFromRow(row.ConstraintType),
				Columns:           row.ColumnNames,
				ReferencedTable:   row.ReferencedTable,
				ReferencedColumns: row.ReferencedColumns,
				Definition:        row.Definition,
			})
		}
	}

	return p.finalize(schema, nil, true), nil
}

// finalize runs the shared downstream stages over a freshly-built schema:
// canonical key flags, scoring/tagging, enrichment, statistics, validation.
// reclassified indicates the columns carry classifier output (DDL and
// metadata-rows paths); the JSON path trusts its document and skips scoring.
func (p *SchemaParser) finalize(schema *models.ParsedSchema, unparsed []string, reclassified bool) *Result {
	deriveKeyFlags(schema)

	for i := range schema.Columns {
		col := &schema.Columns[i]
		if reclassified {
			col.QualityScore = Score(col)
		} else {
			col.QualityScore = clamp(col.QualityScore, 0, 1)
		}
		if p.opts.GenerateTags {
			col.Tags = mergeTags(col.Tags, GenerateTags(col))
		}
	}

	if p.opts.EnrichMetadata {
		schema = p.enrich(schema)
	}

	if p.opts.IncludeStatistics {
		schema.Statistics = ComputeStatistics(schema.Columns, schema.Indexes)
	}

	schema.ParseID = uuid.New()

	result := &Result{
		ParseID:  schema.ParseID,
		Schema:   schema,
		Unparsed: unparsed,
	}
	if p.opts.ValidateSchema {
		result.Validation = Validate(schema, unparsed)
	}
	p.logger.Info("schema parsed",
		zap.String("parse_id", result.ParseID.String()),
		zap.String("name", schema.Name),
		zap.String("kind", string(schema.Kind)),
		zap.Int("columns", len(schema.Columns)),
	)
	return result
}

// deriveKeyFlags merges the two primary-key sources (inline column keyword and
// table-level constraint) into one canonical flag set, and recomputes the
// foreign-key flag from FOREIGN_KEY constraints so all three input paths agree
// on what "is a foreign key" means.
func deriveKeyFlags(schema *models.ParsedSchema) {
	for _, cons := range schema.Constraints {
		switch cons.Type {
		case models.ConstraintPrimaryKey:
			for _, name := range cons.Columns {
				if col := columnByNameFold(schema, name); col != nil {
					col.IsPrimaryKey = true
					col.IsNullable = false
				}
			}
		case models.ConstraintForeignKey:
			for _, name := range cons.Columns {
				if col := columnByNameFold(schema, name); col != nil {
					col.IsForeignKey = true
				}
			}
		case models.ConstraintUnique:
			if len(cons.Columns) == 1 {
				if col := columnByNameFold(schema, cons.Columns[0]); col != nil {
					col.IsUnique = true
				}
			}
		}
	}
}

func columnByNameFold(schema *models.ParsedSchema, name string) *models.ParsedColumn {
	for i := range schema.Columns {
		if strings.EqualFold(schema.Columns[i].Name, name) {
			return &schema.Columns[i]
		}
	}
	return nil
}

func indexTypeFromRow(row datasource.IndexRow) models.IndexType {
	t := models.IndexType(strings.ToUpper(strings.TrimSpace(row.IndexType)))
	if models.IsValidIndexType(t) {
		return t
	}
	if row.IsUnique {
		return models.IndexUnique
	}
	return models.IndexNonClustered
}

func constraintTypeFromRow(raw string) models.ConstraintType {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	t := models.ConstraintType(normalized)
	if models.IsValidConstraintType(t) {
		return t
	}
	return models.ConstraintCheck
}

// isSystemColumn flags catalog-internal columns excluded unless the
// IncludeSystemColumns toggle is on.
func isSystemColumn(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "__") ||
		strings.HasPrefix(lower, "$") ||
		strings.HasPrefix(lower, "sys_")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mergeTags(existing, generated []string) []string {
	if len(existing) == 0 {
		return generated
	}
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(generated))
	for _, t := range existing {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range generated {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

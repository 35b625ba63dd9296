package parser

import (
	"encoding/json"

	"github.com/schemalens/schemalens/pkg/apperrors"
	"github.com/schemalens/schemalens/pkg/jsonutil"
	"github.com/schemalens/schemalens/pkg/models"
)

// jsonSchemaDoc mirrors the canonical schema shape but decodes leniently:
// optional fields may be absent, and loosely-typed documents may carry
// booleans as strings or scores as numbers-in-strings.
type jsonSchemaDoc struct {
	Name          string                      `json:"name"`
	Kind          json.RawMessage             `json:"kind"`
	Type          json.RawMessage             `json:"type"` // accepted alias for kind
	Columns       []jsonColumnDoc             `json:"columns"`
	Indexes       []models.ParsedIndex        `json:"indexes"`
	Constraints   []models.ParsedConstraint   `json:"constraints"`
	Relationships []models.SchemaRelationship `json:"relationships"`
	Metadata      *models.SchemaMetadata      `json:"metadata"`
}

type jsonColumnDoc struct {
	Name         string          `json:"name"`
	DataType     jsonDataTypeDoc `json:"data_type"`
	IsNullable   json.RawMessage `json:"is_nullable"`
	IsPrimaryKey json.RawMessage `json:"is_primary_key"`
	IsForeignKey json.RawMessage `json:"is_foreign_key"`
	IsUnique     json.RawMessage `json:"is_unique"`
	DefaultValue any             `json:"default_value"`
	Description  json.RawMessage `json:"description"`
	Tags         []string        `json:"tags"`
	QualityScore json.RawMessage `json:"quality_score"`
}

type jsonDataTypeDoc struct {
	Name      json.RawMessage `json:"name"`
	Category  json.RawMessage `json:"category"`
	MaxLength json.RawMessage `json:"max_length"`
	Precision json.RawMessage `json:"precision"`
	Scale     json.RawMessage `json:"scale"`
}

// ParseJSON builds a canonical schema from an already-structured JSON schema
// document. The document's DataType values are trusted as-is, with no
// classification re-run. Missing optional fields are defaulted: is_nullable
// true, the key/unique flags false, quality_score 0.5. A parse-result envelope
// (a document whose schema lives under a top-level "schema" key, as the parse
// command emits) is unwrapped so parse output can be fed straight back in.
// Decode failures are wrapped into a ParseError carrying the original cause.
func (p *SchemaParser) ParseJSON(data []byte) (*Result, error) {
	if len(data) > p.maxInput {
		return nil, apperrors.NewParseError("json input too large", apperrors.ErrInputTooLarge)
	}

	var doc jsonSchemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewParseError("decode json schema document", err)
	}
	if doc.Name == "" {
		var envelope struct {
			Schema json.RawMessage `json:"schema"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil &&
			len(envelope.Schema) > 0 && string(envelope.Schema) != "null" {
			return p.ParseJSON(envelope.Schema)
		}
		return nil, apperrors.NewParseError("json schema document has no name", nil)
	}

	schema := &models.ParsedSchema{
		Name:          doc.Name,
		Kind:          kindFromDoc(doc),
		Relationships: doc.Relationships,
	}
	if doc.Metadata != nil {
		schema.Metadata = *doc.Metadata
	}

	schema.Columns = make([]models.ParsedColumn, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		if c.Name == "" {
			continue
		}
		if !p.opts.IncludeSystemColumns && isSystemColumn(c.Name) {
			continue
		}
		dt := models.DataType{
			Name:      jsonutil.FlexibleString(c.DataType.Name),
			Category:  models.ParseDataTypeCategory(jsonutil.FlexibleString(c.DataType.Category)),
			MaxLength: jsonutil.FlexibleInt(c.DataType.MaxLength),
			Precision: jsonutil.FlexibleInt(c.DataType.Precision),
			Scale:     jsonutil.FlexibleInt(c.DataType.Scale),
		}
		schema.Columns = append(schema.Columns, models.ParsedColumn{
			Name:         c.Name,
			DataType:     dt,
			IsNullable:   jsonutil.FlexibleBool(c.IsNullable, true),
			IsPrimaryKey: jsonutil.FlexibleBool(c.IsPrimaryKey, false),
			IsForeignKey: jsonutil.FlexibleBool(c.IsForeignKey, false),
			IsUnique:     jsonutil.FlexibleBool(c.IsUnique, false),
			DefaultValue: c.DefaultValue,
			Description:  jsonutil.FlexibleString(c.Description),
			Tags:         c.Tags,
			QualityScore: jsonutil.FlexibleFloat(c.QualityScore, 0.5),
		})
	}

	if p.opts.IncludeIndexes {
		schema.Indexes = doc.Indexes
	}
	if p.opts.IncludeConstraints {
		schema.Constraints = doc.Constraints
	}

	return p.finalize(schema, nil, false), nil
}

func kindFromDoc(doc jsonSchemaDoc) models.SchemaKind {
	raw := doc.Kind
	if len(raw) == 0 {
		raw = doc.Type
	}
	name := jsonutil.FlexibleString(raw)
	k := models.SchemaKind(normalizeKindName(name))
	if models.IsValidSchemaKind(k) {
		return k
	}
	return models.KindTable
}

func normalizeKindName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-32)
		case c == ' ' || c == '-':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Package ddl extracts schema fragments from a documented subset of SQL DDL:
// single CREATE TABLE|VIEW|PROCEDURE|FUNCTION|INDEX statements, optionally
// schema-qualified and bracket-quoted, with column clauses, standalone
// CREATE INDEX statements and table-level CONSTRAINT clauses. It is a
// pattern-bounded extractor, not a SQL parser; fragments outside the subset
// land in the Unparsed bucket instead of failing the whole statement.
package ddl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/schemalens/schemalens/pkg/apperrors"
	"github.com/schemalens/schemalens/pkg/models"
)

// ColumnFragment is a raw column clause captured from a CREATE body.
type ColumnFragment struct {
	Name       string
	TypeToken  string
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	HasDefault bool
	DefaultRaw string
	Default    any
}

// IndexFragment is a raw CREATE INDEX statement capture.
type IndexFragment struct {
	Name     string
	Table    string
	Type     models.IndexType
	Columns  []string
	IsUnique bool
}

// ConstraintFragment is a raw table-level CONSTRAINT clause capture.
type ConstraintFragment struct {
	Name              string
	Type              models.ConstraintType
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	Definition        string
}

// Extraction is the raw result of scanning one DDL statement.
type Extraction struct {
	Kind        models.SchemaKind
	SchemaName  string
	Name        string
	Columns     []ColumnFragment
	Indexes     []IndexFragment
	Constraints []ConstraintFragment
	// Unparsed collects body fragments that matched no pattern. They are
	// reported, never silently dropped.
	Unparsed []string
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// CREATE [OR REPLACE] [UNIQUE] [CLUSTERED|NONCLUSTERED] <kind> [schema.]name
	headerRe = regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?(?:UNIQUE\s+)?(?:CLUSTERED\s+|NONCLUSTERED\s+)?(TABLE|VIEW|PROCEDURE|PROC|FUNCTION|INDEX)\s+(?:(\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)\s*\.\s*)?(\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)`)

	columnRe = regexp.MustCompile(`(?i)^(\[[^\]]+\]|"[^"]+"|` + "`[^`]+`" + `|[A-Za-z_][\w$]*)\s+([A-Za-z_][\w]*(?:\s+(?:varying|precision|with(?:out)?\s+time\s+zone|raw))?(?:\s*\([^)]*\))?)(.*)$`)

	notNullRe = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	nullRe    = regexp.MustCompile(`(?i)\bNULL\b`)
	inlinePK  = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	inlineUQ  = regexp.MustCompile(`(?i)\bUNIQUE\b`)
	defaultRe = regexp.MustCompile(`(?i)\bDEFAULT\s+(\((?:[^()]|\([^()]*\))*\)|'(?:[^']|'')*'|[^\s,]+)`)

	indexRe = regexp.MustCompile(`(?i)\bCREATE\s+(UNIQUE\s+)?(CLUSTERED\s+|NONCLUSTERED\s+)?INDEX\s+(\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)\s+ON\s+((?:\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)(?:\s*\.\s*(?:\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*))?)\s*\(([^)]*)\)`)

	constraintRe = regexp.MustCompile(`(?i)^CONSTRAINT\s+(\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)\s+(PRIMARY\s+KEY|FOREIGN\s+KEY|UNIQUE|CHECK)\s*(\((?:[^()]|\([^()]*\))*\))?(?:\s+REFERENCES\s+((?:\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*)(?:\s*\.\s*(?:\[[^\]]+\]|"[^"]+"|[A-Za-z_][\w$]*))?)\s*\(([^)]*)\))?`)

	numericLiteralRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// reserved words that can never start a column fragment.
var columnStopWords = map[string]bool{
	"constraint": true,
	"primary":    true,
	"foreign":    true,
	"unique":     true,
	"check":      true,
	"index":      true,
	"key":        true,
	"exclude":    true,
	"like":       true,
}

// Extract scans a single normalized DDL statement. Failure to recognize the
// statement header is the only hard failure; everything else degrades to the
// Unparsed bucket.
func Extract(raw string) (*Extraction, error) {
	normalized := Normalize(raw)

	header := headerRe.FindStringSubmatch(normalized)
	if header == nil {
		return nil, apperrors.NewParseError("unrecognized DDL header", apperrors.ErrNoStatementHeader)
	}

	ex := &Extraction{
		Kind:       kindFromKeyword(header[1]),
		SchemaName: Unquote(header[2]),
		Name:       Unquote(header[3]),
	}

	if ex.Kind == models.KindTable || ex.Kind == models.KindView {
		body, ok := statementBody(normalized, len(header[0]))
		if ok {
			ex.scanBody(body)
		}
	}

	for _, m := range indexRe.FindAllStringSubmatch(normalized, -1) {
		ex.Indexes = append(ex.Indexes, indexFromMatch(m))
	}

	return ex, nil
}

// Normalize collapses every run of whitespace to a single space and trims the
// result. All extraction patterns assume normalized input.
func Normalize(raw string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
}

// Unquote strips one level of [bracket], "double quote" or `backtick` quoting.
func Unquote(ident string) string {
	ident = strings.TrimSpace(ident)
	if len(ident) >= 2 {
		switch {
		case ident[0] == '[' && ident[len(ident)-1] == ']',
			ident[0] == '"' && ident[len(ident)-1] == '"',
			ident[0] == '`' && ident[len(ident)-1] == '`':
			return ident[1 : len(ident)-1]
		}
	}
	return ident
}

// ParseDefaultLiteral interprets a raw DEFAULT expression: quoted strings
// unwrap their quotes, numeric strings parse to float64, true/false/null map
// to their typed equivalents, anything else stays a raw string.
func ParseDefaultLiteral(raw string) any {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		return strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	if numericLiteralRe.MatchString(raw) {
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return f
		}
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return raw
}

func kindFromKeyword(kw string) models.SchemaKind {
	switch strings.ToUpper(kw) {
	case "TABLE":
		return models.KindTable
	case "VIEW":
		return models.KindView
	case "PROCEDURE", "PROC":
		return models.KindStoredProcedure
	case "FUNCTION":
		return models.KindFunction
	default:
		return models.KindIndex
	}
}

// statementBody returns the text between the first opening parenthesis after
// the header and its matching closing parenthesis.
func statementBody(normalized string, headerEnd int) (string, bool) {
	rest := normalized[headerEnd:]
	open := strings.IndexByte(rest, '(')
	if open == -1 {
		return "", false
	}
	depth := 0
	for i := open; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return rest[open+1 : i], true
			}
		}
	}
	// Unbalanced parens: take everything after the opening one.
	return rest[open+1:], true
}

func (ex *Extraction) scanBody(body string) {
	for _, fragment := range splitTopLevel(body) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if m := constraintRe.FindStringSubmatch(fragment); m != nil {
			ex.Constraints = append(ex.Constraints, constraintFromMatch(m, fragment))
			continue
		}
		if col, ok := columnFromFragment(fragment); ok {
			ex.Columns = append(ex.Columns, col)
			continue
		}
		ex.Unparsed = append(ex.Unparsed, fragment)
	}
}

// splitTopLevel splits a CREATE body on commas outside parentheses and quotes.
func splitTopLevel(body string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	inString := false
	for _, ch := range body {
		switch {
		case ch == '\'':
			inString = !inString
			current.WriteRune(ch)
		case inString:
			current.WriteRune(ch)
		case ch == '(':
			depth++
			current.WriteRune(ch)
		case ch == ')':
			depth--
			current.WriteRune(ch)
		case ch == ',' && depth == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func columnFromFragment(fragment string) (ColumnFragment, bool) {
	m := columnRe.FindStringSubmatch(fragment)
	if m == nil {
		return ColumnFragment{}, false
	}
	name := Unquote(m[1])
	if columnStopWords[strings.ToLower(name)] {
		return ColumnFragment{}, false
	}

	col := ColumnFragment{
		Name:      name,
		TypeToken: strings.TrimSpace(m[2]),
		Nullable:  true,
	}
	rest := m[3]

	// Capture DEFAULT before keyword scans so a DEFAULT NULL clause is not
	// misread as a nullability marker.
	if dm := defaultRe.FindStringSubmatch(rest); dm != nil {
		col.HasDefault = true
		col.DefaultRaw = dm[1]
		col.Default = ParseDefaultLiteral(dm[1])
		rest = strings.Replace(rest, dm[0], " ", 1)
	}
	if notNullRe.MatchString(rest) {
		col.Nullable = false
	} else if nullRe.MatchString(rest) {
		col.Nullable = true
	}
	if inlinePK.MatchString(rest) {
		col.PrimaryKey = true
		col.Nullable = false
	}
	if inlineUQ.MatchString(rest) {
		col.Unique = true
	}
	return col, true
}

func indexFromMatch(m []string) IndexFragment {
	idx := IndexFragment{
		Name:     Unquote(m[3]),
		Table:    unquoteQualified(m[4]),
		IsUnique: strings.TrimSpace(m[1]) != "",
		Columns:  splitColumnList(m[5]),
	}
	// Explicit CLUSTERED/NONCLUSTERED wins over UNIQUE; absent all keywords the
	// index defaults to NONCLUSTERED.
	switch strings.ToUpper(strings.TrimSpace(m[2])) {
	case "CLUSTERED":
		idx.Type = models.IndexClustered
	case "NONCLUSTERED":
		idx.Type = models.IndexNonClustered
	default:
		if idx.IsUnique {
			idx.Type = models.IndexUnique
		} else {
			idx.Type = models.IndexNonClustered
		}
	}
	return idx
}

func constraintFromMatch(m []string, fragment string) ConstraintFragment {
	cons := ConstraintFragment{
		Name:       Unquote(m[1]),
		Definition: fragment,
	}
	switch strings.ToUpper(whitespaceRe.ReplaceAllString(m[2], " ")) {
	case "PRIMARY KEY":
		cons.Type = models.ConstraintPrimaryKey
	case "FOREIGN KEY":
		cons.Type = models.ConstraintForeignKey
	case "UNIQUE":
		cons.Type = models.ConstraintUnique
	case "CHECK":
		cons.Type = models.ConstraintCheck
	}
	if m[3] != "" && cons.Type != models.ConstraintCheck {
		cons.Columns = splitColumnList(strings.Trim(m[3], "()"))
	}
	if m[4] != "" {
		cons.ReferencedTable = unquoteQualified(m[4])
		cons.ReferencedColumns = splitColumnList(m[5])
	}
	return cons
}

func splitColumnList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		name := Unquote(strings.TrimSpace(part))
		// Drop sort-order suffixes (col ASC / col DESC).
		if fields := strings.Fields(name); len(fields) > 1 {
			name = Unquote(fields[0])
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func unquoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = Unquote(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}

// String summarizes the extraction for logs.
func (ex *Extraction) String() string {
	return fmt.Sprintf("%s %s: %d columns, %d indexes, %d constraints, %d unparsed",
		ex.Kind, ex.Name, len(ex.Columns), len(ex.Indexes), len(ex.Constraints), len(ex.Unparsed))
}

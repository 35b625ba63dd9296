package parser

import (
	"strings"

	"github.com/schemalens/schemalens/pkg/models"
)

// keywordTag pairs a column-name substring with the semantic tag it implies.
// Matching is case-insensitive and order-independent; the slice order only
// fixes the output order so tag lists are deterministic.
type keywordTag struct {
	keyword string
	tag     string
}

var keywordTags = []keywordTag{
	{"id", "identifier"},
	{"name", "name"},
	{"email", "email"},
	{"phone", "phone"},
	{"address", "address"},
	{"date", "temporal"},
	{"time", "temporal"},
	{"amount", "financial"},
	{"price", "financial"},
	{"cost", "financial"},
}

// Score computes the deterministic quality heuristic for a column: an
// estimate of how well-described the column is, not measured data quality.
// The result is always in [0,1].
func Score(col *models.ParsedColumn) float64 {
	score := 0.5
	if len(col.Name) > 3 {
		score += 0.1
	}
	if strings.Contains(col.Name, "_") {
		score += 0.1
	}
	if col.DataType.Category != models.CategoryOther {
		score += 0.2
	}
	if col.DataType.MaxLength != nil || col.DataType.Precision != nil {
		score += 0.1
	}
	return clamp(score, 0, 1)
}

// GenerateTags produces the semantic tags for a column: the lower-cased
// category name plus every keyword tag whose keyword occurs in the column
// name. Multiple tags may apply; duplicates are collapsed.
func GenerateTags(col *models.ParsedColumn) []string {
	tags := []string{strings.ToLower(string(col.DataType.Category))}
	lowerName := strings.ToLower(col.Name)
	for _, kt := range keywordTags {
		if strings.Contains(lowerName, kt.keyword) {
			tags = append(tags, kt.tag)
		}
	}
	return dedupe(tags)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

package sqltype

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/schemalens/schemalens/pkg/models"
)

// tokenPattern splits a raw type token into a base name and an optional
// parenthesized parameter list. Base names may contain spaces
// ("double precision", "character varying").
var tokenPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_ ]*?)\s*(?:\(\s*([^)]*?)\s*\))?\s*$`)

// Classifier maps raw vendor type tokens to semantic categories. The category
// table is injectable so new vendor types can be added without a code change.
type Classifier struct {
	categories map[string]models.DataTypeCategory
}

// NewClassifier creates a classifier over the given category table. The map is
// copied; keys are matched case-insensitively.
func NewClassifier(categories map[string]models.DataTypeCategory) *Classifier {
	c := &Classifier{categories: make(map[string]models.DataTypeCategory, len(categories))}
	for name, cat := range categories {
		c.categories[normalizeTypeName(name)] = cat
	}
	return c
}

// Register adds or overrides a single type mapping.
func (c *Classifier) Register(name string, category models.DataTypeCategory) {
	c.categories[normalizeTypeName(name)] = category
}

// Extend merges additional mappings into the table, overriding on conflict.
func (c *Classifier) Extend(categories map[string]models.DataTypeCategory) {
	for name, cat := range categories {
		c.Register(name, cat)
	}
}

// Classify turns a raw type token (e.g. "decimal(10,2)") into a DataType.
// It never fails: unrecognized base names map to CategoryOther, and parameter
// lists that are not purely numeric are ignored. Exactly one numeric parameter
// becomes MaxLength; exactly two become Precision and Scale.
func (c *Classifier) Classify(token string) models.DataType {
	dt := models.DataType{
		Name:     strings.TrimSpace(token),
		Category: models.CategoryOther,
	}

	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return dt
	}

	base := normalizeTypeName(m[1])
	if cat, ok := c.categories[base]; ok {
		dt.Category = cat
	}

	if m[2] == "" {
		return dt
	}
	params := strings.Split(m[2], ",")
	nums := make([]int, 0, len(params))
	for _, p := range params {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return dt
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		dt.MaxLength = &nums[0]
	case 2:
		dt.Precision = &nums[0]
		dt.Scale = &nums[1]
	}
	return dt
}

func normalizeTypeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

package sqltype

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schemalens/schemalens/pkg/models"
)

// LoadDialectFile reads a YAML file mapping raw type names to category names
// and returns the parsed category table. Example file:
//
//	hstore: OTHER
//	vector: BINARY
//	ltree: STRING
//
// Category names are matched case-insensitively; unknown names are rejected so
// a typo in a dialect file does not silently classify everything as OTHER.
func LoadDialectFile(path string) (map[string]models.DataTypeCategory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialect file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dialect file %s: %w", path, err)
	}

	out := make(map[string]models.DataTypeCategory, len(raw))
	for name, catName := range raw {
		cat := models.DataTypeCategory(strings.ToUpper(strings.TrimSpace(catName)))
		if !models.IsValidDataTypeCategory(cat) {
			return nil, fmt.Errorf("dialect file %s: type %q has unknown category %q", path, name, catName)
		}
		out[name] = cat
	}
	return out, nil
}

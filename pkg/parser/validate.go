package parser

import (
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/pkg/models"
)

// Validate runs the structural-consistency checks over a finished schema.
// It never fails and never blocks construction; the result is advisory data
// for the caller. Errors: duplicate column names under case-insensitive
// comparison. Warnings: no primary-key column, foreign-key flags without a
// matching FOREIGN_KEY constraint, and any unparsed DDL fragments.
func Validate(schema *models.ParsedSchema, unparsed []string) *models.SchemaValidationResult {
	result := &models.SchemaValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	seen := make(map[string]string, len(schema.Columns))
	hasPK := false
	for _, col := range schema.Columns {
		folded := strings.ToLower(col.Name)
		if first, dup := seen[folded]; dup {
			result.Errors = append(result.Errors,
				fmt.Sprintf("duplicate column name: %q collides with %q (case-insensitive)", col.Name, first))
		} else {
			seen[folded] = col.Name
		}
		if col.IsPrimaryKey {
			hasPK = true
		}
	}

	if !hasPK && schema.Kind == models.KindTable {
		result.Warnings = append(result.Warnings, "no primary key column defined")
	}

	for _, col := range schema.Columns {
		if col.IsForeignKey && !hasForeignKeyConstraint(schema, col.Name) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("column %q is flagged as a foreign key but no FOREIGN_KEY constraint covers it", col.Name))
		}
	}

	for _, fragment := range unparsed {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unparsed DDL fragment skipped: %q", truncateFragment(fragment)))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func hasForeignKeyConstraint(schema *models.ParsedSchema, columnName string) bool {
	for _, cons := range schema.Constraints {
		if cons.Type != models.ConstraintForeignKey {
			continue
		}
		for _, name := range cons.Columns {
			if strings.EqualFold(name, columnName) {
				return true
			}
		}
	}
	return false
}

func truncateFragment(s string) string {
	const maxLen = 80
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

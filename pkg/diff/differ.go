// Package diff computes the structural delta between two canonical schema
// snapshots. Matching is by name only, so a rename surfaces as one removal
// plus one addition. A column counts as modified when its serialized
// representation differs in any field.
package diff

import (
	"encoding/json"

	"github.com/schemalens/schemalens/pkg/models"
)

// Compare returns the structural difference between snapshots a (older) and
// b (newer). Neither input is mutated. Additions and modifications are listed
// in b's iteration order; removals in a's. That ordering is part of the
// contract callers rely on when rendering change reports.
func Compare(a, b *models.ParsedSchema) *models.SchemaDelta {
	delta := &models.SchemaDelta{}

	oldCols := make(map[string]models.ParsedColumn, len(a.Columns))
	for _, col := range a.Columns {
		oldCols[col.Name] = col
	}
	newCols := make(map[string]models.ParsedColumn, len(b.Columns))
	for _, col := range b.Columns {
		newCols[col.Name] = col
	}

	for _, col := range b.Columns {
		old, exists := oldCols[col.Name]
		switch {
		case !exists:
			delta.AddedColumns = append(delta.AddedColumns, col)
		case !sameSerialized(old, col):
			delta.ModifiedColumns = append(delta.ModifiedColumns, models.ColumnModification{
				Name:   col.Name,
				Before: old,
				After:  col,
			})
		}
	}
	for _, col := range a.Columns {
		if _, exists := newCols[col.Name]; !exists {
			delta.RemovedColumns = append(delta.RemovedColumns, col)
		}
	}

	oldIdx := make(map[string]bool, len(a.Indexes))
	for _, idx := range a.Indexes {
		oldIdx[idx.Name] = true
	}
	newIdx := make(map[string]bool, len(b.Indexes))
	for _, idx := range b.Indexes {
		newIdx[idx.Name] = true
	}
	for _, idx := range b.Indexes {
		if !oldIdx[idx.Name] {
			delta.AddedIndexes = append(delta.AddedIndexes, idx)
		}
	}
	for _, idx := range a.Indexes {
		if !newIdx[idx.Name] {
			delta.RemovedIndexes = append(delta.RemovedIndexes, idx)
		}
	}

	oldCons := make(map[string]bool, len(a.Constraints))
	for _, cons := range a.Constraints {
		oldCons[cons.Name] = true
	}
	newCons := make(map[string]bool, len(b.Constraints))
	for _, cons := range b.Constraints {
		newCons[cons.Name] = true
	}
	for _, cons := range b.Constraints {
		if !oldCons[cons.Name] {
			delta.AddedConstraints = append(delta.AddedConstraints, cons)
		}
	}
	for _, cons := range a.Constraints {
		if !newCons[cons.Name] {
			delta.RemovedConstraints = append(delta.RemovedConstraints, cons)
		}
	}

	return delta
}

// sameSerialized compares two columns through their canonical JSON form.
// Serialization keeps the comparison aligned with what callers persist and
// diff over time, and treats nil and empty slices the same way the wire
// format does.
func sameSerialized(a, b models.ParsedColumn) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}

package models

// ColumnModification pairs the before and after state of a column whose
// serialized representation changed between two snapshots.
type ColumnModification struct {
	Name   string       `json:"name"`
	Before ParsedColumn `json:"before"`
	After  ParsedColumn `json:"after"`
}

// SchemaDelta is the structural difference between two ParsedSchema snapshots.
// Additions and modifications follow the iteration order of the newer schema;
// removals follow the iteration order of the older one.
type SchemaDelta struct {
	AddedColumns       []ParsedColumn       `json:"added_columns"`
	RemovedColumns     []ParsedColumn       `json:"removed_columns"`
	ModifiedColumns    []ColumnModification `json:"modified_columns"`
	AddedIndexes       []ParsedIndex        `json:"added_indexes"`
	RemovedIndexes     []ParsedIndex        `json:"removed_indexes"`
	AddedConstraints   []ParsedConstraint   `json:"added_constraints"`
	RemovedConstraints []ParsedConstraint   `json:"removed_constraints"`
}

// HasChanges reports whether the delta contains any difference.
func (d *SchemaDelta) HasChanges() bool {
	return len(d.AddedColumns) > 0 ||
		len(d.RemovedColumns) > 0 ||
		len(d.ModifiedColumns) > 0 ||
		len(d.AddedIndexes) > 0 ||
		len(d.RemovedIndexes) > 0 ||
		len(d.AddedConstraints) > 0 ||
		len(d.RemovedConstraints) > 0
}

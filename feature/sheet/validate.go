package sheet

// FieldState classifies a field's writability on a given row.
type FieldState int

const (
	// FieldEditable means the field accepts user edits.
	FieldEditable FieldState = iota
	// FieldReadOnlyStatic means the field is configured read-only by name.
	FieldReadOnlyStatic
	// FieldReadOnlyDerived means a derived rule currently freezes the field.
	FieldReadOnlyDerived
)

// EditGate classifies field writability and gates user edits.
type EditGate struct {
	cfg      *Config
	readOnly map[string]bool
}

// NewEditGate creates an EditGate for the configured sheet.
func NewEditGate(cfg *Config) *EditGate {
	readOnly := make(map[string]bool)
	for _, f := range cfg.ReadOnly() {
		readOnly[f] = true
	}
	return &EditGate{cfg: cfg, readOnly: readOnly}
}

// State returns the current writability of field on row. prior is the
// field's value before the edit under consideration; nil means the
// surrounding platform could not supply it (e.g. a multi-cell paste).
//
// Derived rules, in order:
//   - a status field whose previous value was "disabled" stays read-only,
//     so a stray edit cannot re-enable what the system itself disabled;
//     when the previous value is unknown the precondition cannot be
//     evaluated and the field is treated as read-only
//   - once the managed entity's status reads "disabled", every field of
//     that entity is read-only
//   - once the managed entity exists (its identifier is non-empty), every
//     field of the entity except its own status is read-only
func (g *EditGate) State(row *Row, field string, prior *string) FieldState {
	if g.readOnly[field] {
		return FieldReadOnlyStatic
	}

	if statusFields[field] {
		if prior == nil {
			return FieldReadOnlyDerived
		}
		if *prior == StatusDisabled {
			return FieldReadOnlyDerived
		}
	}

	if expandedAdFields[field] {
		status, _ := row.Value(FieldExpandedAdStatus)
		if status == StatusDisabled {
			return FieldReadOnlyDerived
		}
		id, _ := row.Value(FieldExpandedAdID)
		if id != "" && field != FieldExpandedAdStatus {
			return FieldReadOnlyDerived
		}
	}

	return FieldEditable
}

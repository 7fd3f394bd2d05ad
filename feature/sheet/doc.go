// Package sheet implements the human-editable tabular data store and its
// internal synchronization rules.
//
// # Components
//
//   - Row: a read/write view over one row's fields by logical name, with
//     JSON-list parsing, number/string coercion, and write-through mutation.
//   - BucketIndex: a persisted mapping from (column, value-hash) to the row
//     identifiers sharing that value, with atomic bucket-to-bucket transfer.
//   - EditGate: the per-field read-only state machine gating user edits.
//   - Highlighter: flags rows whose configured fields disagree by derived
//     domain key.
//   - Linker: the edit-event entry point tying the above together: gate,
//     propagate, transfer, re-highlight.
//   - Sheet: an open view over the store (header column map + lazy rows).
//
// Rows carry their error state in a dedicated error-message column plus a
// row background color; "staged" is a softer highlight applied when a user
// edits a previously erroring row.
package sheet

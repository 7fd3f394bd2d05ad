package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sheet-sync/core/utils"
	"sheet-sync/feature/sheet/store"
)

// Row is a read/write view over one sheet row, addressed by logical field
// name. Writes go through to the backing store and update the in-memory
// cache so later reads in the same pass see them.
type Row struct {
	store store.Store
	cfg   *Config
	cols  map[string]int // field -> 1-based column
	index int            // 1-based row
	cells []string       // cache, cells[col-1]
}

// NewRow builds a Row from one row's cell values and the column map.
// The map must include the error-message field; without a place to write
// errors the row state machine cannot function.
func NewRow(st store.Store, cfg *Config, cols map[string]int, index int, cells []string) (*Row, error) {
	if _, ok := cols[FieldErrorMessages]; !ok {
		return nil, fmt.Errorf("column map is missing the %s field", FieldErrorMessages)
	}
	return &Row{store: st, cfg: cfg, cols: cols, index: index, cells: cells}, nil
}

// Index returns the row's 1-based position in the sheet.
func (r *Row) Index() int {
	return r.index
}

// Col returns the 1-based column of a field, if mapped.
func (r *Row) Col(field string) (int, bool) {
	col, ok := r.cols[field]
	return col, ok
}

// Value returns the raw cell value of a field.
func (r *Row) Value(field string) (string, error) {
	col, ok := r.cols[field]
	if !ok {
		return "", &FieldError{Field: field, Reason: "not present in the column map"}
	}
	if col > len(r.cells) {
		return "", nil
	}
	return r.cells[col-1], nil
}

// String returns the cell value coerced to a string.
func (r *Row) String(field string) (string, error) {
	v, err := r.Value(field)
	if err != nil {
		return "", err
	}
	return utils.ToString(v), nil
}

// Number returns the cell value parsed as a number. An empty cell is zero.
func (r *Row) Number(field string) (float64, error) {
	v, err := r.Value(field)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(v) == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("not a number: %q", v)}
	}
	return n, nil
}

// List returns the cell value as a list of strings. The cell may hold a
// JSON array literal or a bare string; a bare string becomes a one-element
// list via a wrap-and-reparse fallback. Malformed content is an error
// naming the field.
func (r *Row) List(field string) ([]string, error) {
	v, err := r.Value(field)
	if err != nil {
		return nil, err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return []string{}, nil
	}

	if items, ok := parseJSONList(v); ok {
		return items, nil
	}
	// Bare unquoted string: wrap and reparse. Content with embedded
	// quotes cannot be wrapped and is reported as malformed.
	if items, ok := parseJSONList(`["` + v + `"]`); ok {
		return items, nil
	}
	return nil, &FieldError{Field: field, Reason: fmt.Sprintf("malformed list content: %q", v)}
}

func parseJSONList(raw string) ([]string, bool) {
	var arr []any
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		items := make([]string, 0, len(arr))
		for _, el := range arr {
			items = append(items, utils.ToString(el))
		}
		return items, true
	}
	var single any
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		switch single.(type) {
		case map[string]any:
			return nil, false
		}
		return []string{utils.ToString(single)}, true
	}
	return nil, false
}

// Map returns the cell value as a flat string-to-string mapping. The cell
// must hold a JSON object whose values are all strings; an empty cell is
// an empty map.
func (r *Row) Map(field string) (map[string]string, error) {
	v, err := r.Value(field)
	if err != nil {
		return nil, err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return map[string]string{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(v), &raw); err != nil {
		return nil, &FieldError{Field: field, Reason: fmt.Sprintf("not a JSON object: %q", v)}
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		s, ok := val.(string)
		if !ok {
			return nil, &FieldError{Field: field, Reason: fmt.Sprintf("value for key %q is not a string", k)}
		}
		out[k] = s
	}
	return out, nil
}

// Set writes a field's value through to the store and the cache.
func (r *Row) Set(ctx context.Context, field, value string) error {
	col, ok := r.cols[field]
	if !ok {
		return &FieldError{Field: field, Reason: "not present in the column map"}
	}
	if err := r.store.WriteCell(ctx, r.index, col, value); err != nil {
		return err
	}
	r.cacheSet(col, value)
	return nil
}

func (r *Row) cacheSet(col int, value string) {
	for col > len(r.cells) {
		r.cells = append(r.cells, "")
	}
	r.cells[col-1] = value
}

// HasError reports whether the row currently carries error text.
func (r *Row) HasError() bool {
	v, _ := r.Value(FieldErrorMessages)
	return strings.TrimSpace(v) != ""
}

// IsEmpty reports whether every cell in the row is blank.
func (r *Row) IsEmpty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// MarkError accumulates the given messages into the error field and turns
// on the error row highlight. Existing error text is kept.
func (r *Row) MarkError(ctx context.Context, messages []string) error {
	existing, err := r.Value(FieldErrorMessages)
	if err != nil {
		return err
	}
	lines := []string{}
	if strings.TrimSpace(existing) != "" {
		lines = append(lines, existing)
	}
	for _, m := range messages {
		lines = append(lines, "ERROR: "+m)
	}
	if err := r.Set(ctx, FieldErrorMessages, strings.Join(lines, "\n")); err != nil {
		return err
	}
	return r.store.SetRowBackground(ctx, r.index, r.cfg.ErrorColor)
}

// MarkResolved clears the error field and the row highlight. Every
// reconciliation pass starts by resolving so stale errors never survive
// a clean pass.
func (r *Row) MarkResolved(ctx context.Context) error {
	if err := r.Set(ctx, FieldErrorMessages, ""); err != nil {
		return err
	}
	return r.store.SetRowBackground(ctx, r.index, "")
}

// MarkStaged applies the softer staged highlight without clearing the
// error text, signaling a human is actively revisiting a failing row.
func (r *Row) MarkStaged(ctx context.Context) error {
	return r.store.SetRowBackground(ctx, r.index, r.cfg.StagedColor)
}

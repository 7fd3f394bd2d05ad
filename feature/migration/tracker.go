package migration

// Change is one recorded field mutation.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Record accumulates what happened to one entity during a pass. Records
// are pure output: the reconciliation logic never reads them back.
type Record struct {
	EntityID string   `json:"entityId"`
	GroupID  string   `json:"groupId"`
	Created  bool     `json:"created"`
	Changes  []Change `json:"changes,omitempty"`
}

// Tracker collects change records for one reconciliation pass.
type Tracker struct {
	records []Record
	current *Record
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin opens a record for the entity the following Track calls refer to.
func (t *Tracker) Begin(entityID, groupID string) {
	t.records = append(t.records, Record{EntityID: entityID, GroupID: groupID})
	t.current = &t.records[len(t.records)-1]
}

// TrackChange records one field mutation. Equal old and new values are a
// no-op, so idempotent sync steps leave no trace.
func (t *Tracker) TrackChange(field, old, new string) {
	if t.current == nil || old == new {
		return
	}
	t.current.Changes = append(t.current.Changes, Change{Field: field, Old: old, New: new})
}

// TrackChangeList records a list-valued field mutation, no-op when the
// lists are shallow-equal (same length, same elements in order).
func (t *Tracker) TrackChangeList(field string, old, new []string) {
	if t.current == nil || listsEqual(old, new) {
		return
	}
	t.current.Changes = append(t.current.Changes, Change{
		Field: field,
		Old:   joinList(old),
		New:   joinList(new),
	})
}

// TrackCreate marks the current record as a creation event. For display,
// creation overrides the relevance of individual change entries.
func (t *Tracker) TrackCreate(entityID, groupID string) {
	if t.current == nil {
		t.Begin(entityID, groupID)
	}
	t.current.EntityID = entityID
	t.current.GroupID = groupID
	t.current.Created = true
}

// Records returns every record holding a creation or at least one change.
func (t *Tracker) Records() []Record {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if r.Created || len(r.Changes) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Reset discards all records, ready for the next pass.
func (t *Tracker) Reset() {
	t.records = nil
	t.current = nil
}

func listsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinList(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}

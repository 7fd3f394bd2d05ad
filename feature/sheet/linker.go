package sheet

import (
	"context"

	"go.uber.org/zap"
)

// Linker applies a single-cell edit: it gates the edit through the
// read-only state machine, propagates linked-column edits to every row in
// the same bucket, transfers the bucket membership, and re-evaluates the
// mismatch highlight on every affected row.
type Linker struct {
	idx         *BucketIndex
	gate        *EditGate
	highlighter *Highlighter
	cfg         *Config
	log         *zap.Logger
}

// NewLinker creates a Linker over the given index.
func NewLinker(idx *BucketIndex, cfg *Config, log *zap.Logger) *Linker {
	return &Linker{
		idx:         idx,
		gate:        NewEditGate(cfg),
		highlighter: NewHighlighter(cfg),
		cfg:         cfg,
		log:         log,
	}
}

// ApplyEdit handles an edit event on one cell: row rowIndex, the named
// field, changed from prior to value. prior is nil when the surrounding
// platform could not supply it.
//
// A rejected edit restores the prior value and returns a ReadOnlyError;
// no other state changes. An accepted edit on a previously erroring row
// marks the row staged. Editing a linked cell to the value it already
// held changes nothing.
func (l *Linker) ApplyEdit(ctx context.Context, sh *Sheet, rowIndex int, field string, prior *string, value string) error {
	row, err := sh.Row(ctx, rowIndex)
	if err != nil {
		return err
	}

	if state := l.gate.State(row, field, prior); state != FieldEditable {
		// Without a prior value there is nothing to restore; the cell
		// keeps whatever it currently holds.
		if prior != nil {
			if err := row.Set(ctx, field, *prior); err != nil {
				return err
			}
		}
		l.log.Warn("Rejected edit on read-only field",
			zap.String("field", field), zap.Int("row", rowIndex))
		return &ReadOnlyError{Field: field}
	}

	// Trigger-style callers deliver the event after the cell changed;
	// API callers deliver it instead of changing the cell. Writing the
	// value is idempotent either way.
	if err := row.Set(ctx, field, value); err != nil {
		return err
	}

	if row.HasError() {
		if err := row.MarkStaged(ctx); err != nil {
			return err
		}
	}

	if l.isLinked(field) {
		if err := l.propagate(ctx, sh, row, field, prior, value); err != nil {
			return err
		}
	}

	_, err = l.highlighter.Check(ctx, row)
	return err
}

func (l *Linker) isLinked(field string) bool {
	for _, f := range l.cfg.Linked() {
		if f == field {
			return true
		}
	}
	return false
}

// propagate writes value into field on every row sharing the prior value,
// then transfers the bucket so future lookups by the new value find all
// previously linked rows plus the edited one.
func (l *Linker) propagate(ctx context.Context, sh *Sheet, edited *Row, field string, prior *string, value string) error {
	if prior == nil {
		// Without the old value the bucket cannot be found; leave the
		// index to the next full rebuild rather than guess.
		l.log.Warn("Cannot propagate edit without prior value",
			zap.String("field", field), zap.Int("row", edited.Index()))
		return nil
	}
	if *prior == value {
		return nil
	}

	for _, id := range l.idx.Get(field, *prior) {
		if id == edited.Index() {
			continue
		}
		linked, err := sh.Row(ctx, id)
		if err != nil {
			return err
		}
		if err := linked.Set(ctx, field, value); err != nil {
			return err
		}
		if _, err := l.highlighter.Check(ctx, linked); err != nil {
			return err
		}
	}

	l.idx.Transfer(field, *prior, value)
	return nil
}

package sheet

import (
	"context"
	"fmt"
	"strings"

	"sheet-sync/feature/sheet/store"

	"go.uber.org/zap"
)

// Sheet is an open view over the tabular store: the column map read from
// the header row plus lazy row construction.
type Sheet struct {
	store store.Store
	cfg   *Config
	cols  map[string]int
	log   *zap.Logger
}

// Open reads the header row and builds the column map. A header without
// the error-message column is a configuration error: the whole run must
// abort before any row is processed.
func Open(ctx context.Context, st store.Store, cfg *Config, log *zap.Logger) (*Sheet, error) {
	header, err := st.ReadRow(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols[name] = i + 1
	}
	if _, ok := cols[FieldErrorMessages]; !ok {
		return nil, fmt.Errorf("sheet %s: header is missing the %s column", cfg.Key, FieldErrorMessages)
	}

	return &Sheet{store: st, cfg: cfg, cols: cols, log: log}, nil
}

// Columns returns the field-to-column map read from the header.
func (s *Sheet) Columns() map[string]int {
	return s.cols
}

// Row reads one row from the store and wraps it in a Row accessor.
func (s *Sheet) Row(ctx context.Context, index int) (*Row, error) {
	cells, err := s.store.ReadRow(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d: %w", index, err)
	}
	return NewRow(s.store, s.cfg, s.cols, index, cells)
}

// LastRow returns the index of the last populated row.
func (s *Sheet) LastRow(ctx context.Context) (int, error) {
	return s.store.LastRow(ctx)
}

// RebuildIndex repopulates idx from a full scan of the sheet's linked
// columns and persists the fresh snapshot. Used when the persisted
// snapshot is absent or stale.
func (s *Sheet) RebuildIndex(ctx context.Context, idx *BucketIndex) error {
	last, err := s.LastRow(ctx)
	if err != nil {
		return err
	}

	for r := 2; r <= last; r++ {
		row, err := s.Row(ctx, r)
		if err != nil {
			return err
		}
		if row.IsEmpty() {
			continue
		}
		for _, field := range s.cfg.Linked() {
			value, err := row.Value(field)
			if err != nil {
				s.log.Warn("Linked column missing from sheet",
					zap.String("field", field), zap.Int("row", r))
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			if err := idx.Add(field, value, r); err != nil {
				return err
			}
		}
	}

	if err := idx.Save(ctx); err != nil {
		return err
	}
	s.log.Info("Rebuilt bucket index", zap.Int("columns", idx.Columns()), zap.Int("rows", last))
	return nil
}

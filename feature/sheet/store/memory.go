package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used in tests and dry runs.
type MemStore struct {
	mu          sync.RWMutex
	values      map[[2]int]string
	backgrounds map[[2]int]string
}

// NewMemStore creates a MemStore pre-populated with the given grid.
// rows[0] becomes sheet row 1.
func NewMemStore(rows [][]string) *MemStore {
	s := &MemStore{
		values:      make(map[[2]int]string),
		backgrounds: make(map[[2]int]string),
	}
	for r, cols := range rows {
		for c, v := range cols {
			if v != "" {
				s.values[[2]int{r + 1, c + 1}] = v
			}
		}
	}
	return s
}

func (s *MemStore) ReadRow(_ context.Context, row int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	width := 0
	for pos := range s.values {
		if pos[0] == row && pos[1] > width {
			width = pos[1]
		}
	}
	values := make([]string, width)
	for pos, v := range s.values {
		if pos[0] == row {
			values[pos[1]-1] = v
		}
	}
	return values, nil
}

func (s *MemStore) ReadRange(ctx context.Context, row, col, rows, cols int) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	region := make([][]string, rows)
	for i := range region {
		region[i] = make([]string, cols)
		for j := range region[i] {
			region[i][j] = s.values[[2]int{row + i, col + j}]
		}
	}
	return region, nil
}

func (s *MemStore) WriteCell(_ context.Context, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, [2]int{row, col})
		return nil
	}
	s.values[[2]int{row, col}] = value
	return nil
}

func (s *MemStore) SetBackground(_ context.Context, row, col int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if color == "" {
		delete(s.backgrounds, [2]int{row, col})
		return nil
	}
	s.backgrounds[[2]int{row, col}] = color
	return nil
}

func (s *MemStore) SetRowBackground(_ context.Context, row int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		for pos := range s.backgrounds {
			if pos[0] == row {
				delete(s.backgrounds, pos)
			}
		}
		return nil
	}

	width := 0
	for pos := range s.values {
		if pos[0] == row && pos[1] > width {
			width = pos[1]
		}
	}
	for c := 1; c <= width; c++ {
		s.backgrounds[[2]int{row, c}] = color
	}
	return nil
}

func (s *MemStore) LastRow(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	last := 0
	for pos := range s.values {
		if pos[0] > last {
			last = pos[0]
		}
	}
	return last, nil
}

func (s *MemStore) LastColumn(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	last := 0
	for pos := range s.values {
		if pos[1] > last {
			last = pos[1]
		}
	}
	return last, nil
}

// Value returns the current value at (row, col). Test helper.
func (s *MemStore) Value(row, col int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[[2]int{row, col}]
}

// Background returns the current background at (row, col). Test helper.
func (s *MemStore) Background(row, col int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backgrounds[[2]int{row, col}]
}

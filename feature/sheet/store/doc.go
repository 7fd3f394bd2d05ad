// Package store provides the tabular backing store for sheets.
//
// The Store interface is the narrow contract the sheet engine needs:
// row reads, single-cell writes, background highlighting and extent
// queries. Rectangular reads exist for efficiency; callers tolerate
// per-cell fallbacks.
//
// Two implementations exist:
//
//   - GormStore: MySQL-backed via gorm, one row per cell in the
//     sheet_cells table, namespaced by a sheet key.
//   - MemStore: in-memory grid for tests and dry runs.
package store

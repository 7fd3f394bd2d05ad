package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cell is the gorm model for a single sheet cell.
type Cell struct {
	SheetKey   string `gorm:"column:sheet_key;primaryKey;size:64"`
	RowIndex   int    `gorm:"column:row_index;primaryKey"`
	ColIndex   int    `gorm:"column:col_index;primaryKey"`
	Value      string `gorm:"column:value;type:text"`
	Background string `gorm:"column:background;size:16"`
}

// TableName sets the table name for the Cell model.
func (Cell) TableName() string {
	return "sheet_cells"
}

// GormStore is a Store backed by a MySQL table via gorm.
// Sheets are namespaced by a sheet key so independent runs do not collide.
type GormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore creates a Store over the given database connection,
// scoped to the sheet identified by key.
func NewGormStore(db *gorm.DB, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

// Migrate creates the sheet_cells table if it does not exist.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&Cell{}); err != nil {
		return fmt.Errorf("failed to migrate sheet store: %w", err)
	}
	return nil
}

func (s *GormStore) scoped() *gorm.DB {
	return s.db.Where("sheet_key = ?", s.key)
}

func (s *GormStore) ReadRow(ctx context.Context, row int) ([]string, error) {
	var cells []Cell
	err := s.scoped().WithContext(ctx).
		Where("row_index = ?", row).
		Order("col_index").
		Find(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d: %w", row, err)
	}

	width := 0
	for _, c := range cells {
		if c.ColIndex > width {
			width = c.ColIndex
		}
	}
	values := make([]string, width)
	for _, c := range cells {
		values[c.ColIndex-1] = c.Value
	}
	return values, nil
}

func (s *GormStore) ReadRange(ctx context.Context, row, col, rows, cols int) ([][]string, error) {
	var cells []Cell
	err := s.scoped().WithContext(ctx).
		Where("row_index >= ? AND row_index < ? AND col_index >= ? AND col_index < ?",
			row, row+rows, col, col+cols).
		Find(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read range at (%d,%d): %w", row, col, err)
	}

	region := make([][]string, rows)
	for i := range region {
		region[i] = make([]string, cols)
	}
	for _, c := range cells {
		region[c.RowIndex-row][c.ColIndex-col] = c.Value
	}
	return region, nil
}

func (s *GormStore) WriteCell(ctx context.Context, row, col int, value string) error {
	cell := Cell{SheetKey: s.key, RowIndex: row, ColIndex: col, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sheet_key"}, {Name: "row_index"}, {Name: "col_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&cell).Error
	if err != nil {
		return fmt.Errorf("failed to write cell (%d,%d): %w", row, col, err)
	}
	return nil
}

func (s *GormStore) SetBackground(ctx context.Context, row, col int, color string) error {
	cell := Cell{SheetKey: s.key, RowIndex: row, ColIndex: col, Background: color}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sheet_key"}, {Name: "row_index"}, {Name: "col_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"background"}),
		}).
		Create(&cell).Error
	if err != nil {
		return fmt.Errorf("failed to set background at (%d,%d): %w", row, col, err)
	}
	return nil
}

func (s *GormStore) SetRowBackground(ctx context.Context, row int, color string) error {
	err := s.scoped().WithContext(ctx).
		Model(&Cell{}).
		Where("row_index = ?", row).
		Update("background", color).Error
	if err != nil {
		return fmt.Errorf("failed to set row %d background: %w", row, err)
	}
	return nil
}

func (s *GormStore) LastRow(ctx context.Context) (int, error) {
	var last *int
	err := s.scoped().WithContext(ctx).
		Model(&Cell{}).
		Select("MAX(row_index)").
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find last row: %w", err)
	}
	if last == nil {
		return 0, nil
	}
	return *last, nil
}

func (s *GormStore) LastColumn(ctx context.Context) (int, error) {
	var last *int
	err := s.scoped().WithContext(ctx).
		Model(&Cell{}).
		Select("MAX(col_index)").
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find last column: %w", err)
	}
	if last == nil {
		return 0, nil
	}
	return *last, nil
}

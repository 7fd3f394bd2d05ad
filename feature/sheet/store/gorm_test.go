package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormStore_ReadRow(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db, "ads")

	rows := sqlmock.NewRows([]string{"sheet_key", "row_index", "col_index", "value", "background"}).
		AddRow("ads", 2, 1, "Campaign A", "").
		AddRow("ads", 2, 3, "12345", "")

	mock.ExpectQuery("SELECT (.+) FROM `sheet_cells`").
		WithArgs("ads", 2).
		WillReturnRows(rows)

	values, err := s.ReadRow(context.Background(), 2)
	assert.NoError(t, err)
	// Dense up to the last populated column, gaps read as empty
	assert.Equal(t, []string{"Campaign A", "", "12345"}, values)
}

func TestGormStore_ReadRow_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db, "ads")

	rows := sqlmock.NewRows([]string{"sheet_key", "row_index", "col_index", "value", "background"})
	mock.ExpectQuery("SELECT (.+) FROM `sheet_cells`").
		WithArgs("ads", 99).
		WillReturnRows(rows)

	values, err := s.ReadRow(context.Background(), 99)
	assert.NoError(t, err)
	assert.Empty(t, values)
}

func TestGormStore_LastRow(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db, "ads")

	mock.ExpectQuery("SELECT MAX\\(row_index\\) FROM `sheet_cells`").
		WithArgs("ads").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))

	last, err := s.LastRow(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, last)
}

func TestGormStore_LastRow_EmptySheet(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db, "ads")

	mock.ExpectQuery("SELECT MAX\\(row_index\\) FROM `sheet_cells`").
		WithArgs("ads").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	last, err := s.LastRow(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, last)
}

func TestGormStore_WriteCell(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db, "ads")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sheet_cells`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.WriteCell(context.Background(), 2, 3, "B")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The MySQL database backs the
// tabular sheet store (see feature/sheet/store).
//
// # Connect
//
// The Connect function establishes a connection to the database and verifies
// it with a ping before returning.
//
// # Schema Inspection
//
// GetTableColumns retrieves the column definitions of a table. It is used at
// startup to verify that the sheet store schema is in place after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "sheet_cells")
package database

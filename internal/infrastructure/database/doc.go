// Package database provides SQLite connectivity for the sqlite-backed
// device directory.
//
// This package manages:
//   - Opening the database with WAL mode and busy-timeout pragmas
//   - Applying embedded SQL migrations at startup
//   - Health checks and lifecycle management
//
// The database is only used when directory.source is "sqlite"; the default
// csv source needs no database at all. Nothing else is persisted - fleet
// state lives on the players themselves.
//
// # Usage
//
//	db, err := database.Open(database.Config{Path: "./data/signfleet.db", WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
package database

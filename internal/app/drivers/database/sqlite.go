package database

import (
	"database/sql"
	"log"
	"medportal-service/internal/app/config"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

func NewSQLite(driverConfig *config.DriverConfig) *sql.DB {
	dbPath := driverConfig.SQLite.Path
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Could not create sqlite directory: %v", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		log.Fatalf("Could not open sqlite database: %v", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Could not connect to sqlite: %v", err)
	}

	log.Println("Successfully connected to sqlite")
	return db
}

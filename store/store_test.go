package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/seowoojae/shelfd/config"
	"github.com/seowoojae/shelfd/log"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

//go:embed db/migration
var migrationFS embed.FS

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func applyLatestSchema(db *sql.DB) error {
	latestSchemaPath := fmt.Sprintf("db/migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := execute(stmt, db); err != nil {
		return errors.Wrapf(err, "Failed to apply latest schema: %s", stmt)
	}
	return nil
}

func execute(stmt string, d *sql.DB) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(stmt); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}

// createTestStore opens a fresh sqlite database in a per-test temp dir and
// applies the latest schema to it.
func createTestStore(t *testing.T) *Store {
	t.Helper()

	dir, err := os.MkdirTemp("", "shelfd-store-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := sql.Open("sqlite", dir+"/test.db")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyLatestSchema(db); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return NewStore(db)
}

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/seowoojae/shelfd/config"
	"github.com/seowoojae/shelfd/version"
)

type DB struct {
	*sql.DB
}

func NewDB() (*DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", config.Opts.DSN)
	if err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Migrate applies the latest schema to a fresh database, or records nothing
// when the stored schema version already matches the current one.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	if _, err := os.Stat(config.Opts.DSN); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "failed to check database file")
		}
	}

	exist, err := d.checkTableExists(ctx, "migration_history")
	if err != nil {
		return errors.Wrap(err, "failed to check migration history table")
	}
	if !exist {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	historyList, err := d.FindMigrationHistoryList(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}
	if len(historyList) == 0 {
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	versionList := make([]string, 0, len(historyList))
	for _, history := range historyList {
		versionList = append(versionList, history.Version)
	}
	version.SortVersionList(versionList)
	latest := versionList[len(versionList)-1]

	if version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latest) {
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	schemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(schemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", schemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to execute statement")
	}
	return tx.Commit()
}

func (d *DB) checkTableExists(ctx context.Context, tableName string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	if err := d.QueryRowContext(ctx, stmt, tableName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

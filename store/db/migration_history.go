package db

import (
	"context"
)

type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

func (d *DB) UpsertMigrationHistory(ctx context.Context, version string) (*MigrationHistory, error) {
	stmt := `
	INSERT INTO migration_history (version)
	VALUES (?)
	ON CONFLICT(version) DO UPDATE
	SET version = EXCLUDED.version
	RETURNING version, created_ts
	`
	history := &MigrationHistory{}
	if err := d.QueryRowContext(ctx, stmt, version).Scan(&history.Version, &history.CreatedTs); err != nil {
		return nil, err
	}
	return history, nil
}

func (d *DB) FindMigrationHistoryList(ctx context.Context) ([]*MigrationHistory, error) {
	stmt := `SELECT version, created_ts FROM migration_history ORDER BY created_ts DESC`
	rows, err := d.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*MigrationHistory, 0)
	for rows.Next() {
		history := &MigrationHistory{}
		if err := rows.Scan(&history.Version, &history.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, history)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

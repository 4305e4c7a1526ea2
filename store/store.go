package store

import (
	"database/sql"
	"sync"
)

type Store struct {
	db     *sql.DB
	dbLock sync.Mutex

	UserCache          sync.Map // map[int32]*User
	UserSettingCache   sync.Map // map[string]*UserSetting
	SystemSettingCache sync.Map // map[string]*SystemSetting
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

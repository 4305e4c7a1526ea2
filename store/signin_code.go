package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/util"
)

// CreateSigninCode mints a one-time code the redirect callback can exchange
// for a session.
func (s *Store) CreateSigninCode(userID int32, ttl time.Duration) (string, error) {
	code := util.GenUUID()
	stmt := `INSERT INTO signin_code (code, user_id, expires_ts) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(stmt, code, userID, time.Now().Add(ttl).Unix()); err != nil {
		return "", errors.Wrap(err, "failed to create signin code")
	}
	return code, nil
}

// ConsumeSigninCode exchanges a code for its user ID. The code is deleted
// whether or not it is still valid, so it can only be tried once.
func (s *Store) ConsumeSigninCode(code string) (int32, error) {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var userID int32
	var expiresTs int64
	stmt := `DELETE FROM signin_code WHERE code = ? RETURNING user_id, expires_ts`
	if err := tx.QueryRow(stmt, code).Scan(&userID, &expiresTs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errors.New("unknown signin code")
		}
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	if time.Now().Unix() > expiresTs {
		return 0, errors.New("signin code expired")
	}
	return userID, nil
}

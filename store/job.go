package store

import (
	"github.com/seowoojae/shelfd/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO job (user_id, book_id, type, status) VALUES (?, ?, ?, ?)
    RETURNING id, user_id, book_id, type, status
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j model.Job
	if err := tx.QueryRow(stmt, job.UserID, job.BookID, job.Type, job.Status).Scan(
		&j.ID, &j.UserID, &j.BookID, &j.Type, &j.Status,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.CoverURL = job.CoverURL
	return &j, nil
}

func (s *Store) SetJobStatus(jobID int, status string) error {
	_, err := s.db.Exec(`UPDATE job SET status = ? WHERE id = ?`, status, jobID)
	return err
}

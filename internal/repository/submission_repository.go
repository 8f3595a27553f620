package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

// SubmissionRepository is the PostgreSQL-backed SubmissionStore.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Insert writes one submission. The unique index on device_id backs up the
// caller's check-then-insert; a violation surfaces as ErrDuplicateDevice.
func (r *SubmissionRepository) Insert(ctx context.Context, sub *model.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO responses (created_at, device_id, answers)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sub.CreatedAt, sub.DeviceID, answers,
	).Scan(&sub.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDevice
		}
		return err
	}
	return nil
}

// ExistsByDevice reports whether a submission with this device id exists.
func (r *SubmissionRepository) ExistsByDevice(ctx context.Context, deviceID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM responses WHERE device_id = $1)`, deviceID,
	).Scan(&exists)
	return exists, err
}

// List retrieves all submissions in insertion order.
func (r *SubmissionRepository) List(ctx context.Context) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, created_at, device_id, answers FROM responses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		var answers []byte
		if err := rows.Scan(&sub.ID, &sub.CreatedAt, &sub.DeviceID, &answers); err != nil {
			return nil, err
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &sub.Answers); err != nil {
				return nil, fmt.Errorf("decode answers: %w", err)
			}
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Count returns the total number of submissions.
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM responses`).Scan(&count)
	return count, err
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

// QuestionRepository is the PostgreSQL-backed QuestionStore.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// List retrieves all questions ordered by display order.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, text, type, options, min, max, min_label, max_label, "order"
		 FROM questions
		 ORDER BY "order"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// Get retrieves one question by id.
func (r *QuestionRepository) Get(ctx context.Context, id string) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, text, type, options, min, max, min_label, max_label, "order"
		 FROM questions WHERE id = $1`, id)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	opts, err := marshalOptions(q.Options)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO questions (id, text, type, options, min, max, min_label, max_label, "order")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.Text, q.Type, opts, q.Min, q.Max, q.MinLabel, q.MaxLabel, q.Order,
	)
	return err
}

// Update replaces all mutable fields of an existing question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	opts, err := marshalOptions(q.Options)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET text = $2, type = $3, options = $4, min = $5, max = $6,
		     min_label = $7, max_label = $8, "order" = $9
		 WHERE id = $1`,
		q.ID, q.Text, q.Type, opts, q.Min, q.Max, q.MinLabel, q.MaxLabel, q.Order,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a question by id.
func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertBatch writes every given question in one transaction, creating or
// replacing by id. Used by the bulk save-all and the default-set seed.
func (r *QuestionRepository) UpsertBatch(ctx context.Context, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range questions {
		q := &questions[i]
		opts, err := marshalOptions(q.Options)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO questions (id, text, type, options, min, max, min_label, max_label, "order")
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE
			 SET text = EXCLUDED.text, type = EXCLUDED.type, options = EXCLUDED.options,
			     min = EXCLUDED.min, max = EXCLUDED.max,
			     min_label = EXCLUDED.min_label, max_label = EXCLUDED.max_label,
			     "order" = EXCLUDED."order"`,
			q.ID, q.Text, q.Type, opts, q.Min, q.Max, q.MinLabel, q.MaxLabel, q.Order,
		)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", q.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// scanQuestion reads one question row, decoding the options JSON column.
func scanQuestion(row pgx.Row) (*model.Question, error) {
	var q model.Question
	var opts []byte
	if err := row.Scan(&q.ID, &q.Text, &q.Type, &opts, &q.Min, &q.Max, &q.MinLabel, &q.MaxLabel, &q.Order); err != nil {
		return nil, err
	}
	if len(opts) > 0 {
		if err := json.Unmarshal(opts, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	return &q, nil
}

func marshalOptions(options []model.Option) ([]byte, error) {
	if len(options) == 0 {
		return nil, nil // NULL column for option-less kinds
	}
	return json.Marshal(options)
}

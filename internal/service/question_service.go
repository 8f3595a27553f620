package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
)

// ErrInvalidQuestionShape marks kind-specific parameter mistakes (missing
// options on a choice question, bad scale bounds) caught before any store call.
var ErrInvalidQuestionShape = errors.New("invalid question shape")

const (
	questionCacheKey = "questions:all"
	questionCacheTTL = 5 * time.Minute
)

// QuestionService handles the question set: the admin editor's CRUD plus the
// ordered reads feeding survey sessions and the export. A Redis client, when
// present, caches the ordered list and is invalidated on every write.
type QuestionService struct {
	store repository.QuestionStore
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewQuestionService creates a new QuestionService. rdb may be nil (demo mode).
func NewQuestionService(store repository.QuestionStore, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{store: store, rdb: rdb, log: log}
}

// List retrieves the question set ordered by display order, through the cache
// when one is configured.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, questionCacheKey).Bytes(); err == nil {
			var questions []model.Question
			if err := json.Unmarshal(cached, &questions); err == nil {
				return questions, nil
			}
			// Corrupt cache entry: fall through to the store.
			s.rdb.Del(ctx, questionCacheKey)
		}
	}

	questions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && len(questions) > 0 {
		if encoded, err := json.Marshal(questions); err == nil {
			if err := s.rdb.Set(ctx, questionCacheKey, encoded, questionCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Question cache write failed")
			}
		}
	}

	return questions, nil
}

// ListOrDefaults returns the stored question set, degrading to the built-in
// default set when the store is empty or unreachable. Participant sessions
// and the export resolve questions through this, so a backend read failure
// never blanks the survey.
func (s *QuestionService) ListOrDefaults(ctx context.Context) []model.Question {
	questions, err := s.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Question fetch failed, serving default set")
		return model.DefaultQuestions()
	}
	if len(questions) == 0 {
		return model.DefaultQuestions()
	}
	return questions
}

// Create assigns a fresh time-based id, appends the question at the end of
// the display order and persists it.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		ID:       fmt.Sprintf("q_%d", time.Now().UnixMilli()),
		Text:     req.Text,
		Type:     model.QuestionType(req.Type),
		Options:  convertOptions(req.Options),
		Min:      req.Min,
		Max:      req.Max,
		MinLabel: req.MinLabel,
		MaxLabel: req.MaxLabel,
	}
	if err := validateShape(q); err != nil {
		return nil, err
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, e := range existing {
		if e.Order > maxOrder {
			maxOrder = e.Order
		}
	}
	q.Order = maxOrder + 1

	if err := s.store.Create(ctx, q); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return q, nil
}

// Update replaces all mutable fields of an existing question. The id is
// immutable and the display order only changes through SaveAll.
func (s *QuestionService) Update(ctx context.Context, id string, req *model.UpdateQuestionRequest) (*model.Question, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		ID:       id,
		Text:     req.Text,
		Type:     model.QuestionType(req.Type),
		Options:  convertOptions(req.Options),
		Min:      req.Min,
		Max:      req.Max,
		MinLabel: req.MinLabel,
		MaxLabel: req.MaxLabel,
		Order:    existing.Order,
	}
	if err := validateShape(q); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, q); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return q, nil
}

// Delete removes a question by id. Irreversible; the handler requires an
// explicit confirmation flag before calling this.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// SaveAll persists a reordered question list. Every question's order field is
// rewritten to its position in the submitted list (1-based); whatever order
// values the payload carried are discarded.
func (s *QuestionService) SaveAll(ctx context.Context, items []model.SaveAllQuestion) ([]model.Question, error) {
	questions := make([]model.Question, len(items))
	for i, item := range items {
		questions[i] = model.Question{
			ID:       item.ID,
			Text:     item.Text,
			Type:     model.QuestionType(item.Type),
			Options:  convertOptions(item.Options),
			Min:      item.Min,
			Max:      item.Max,
			MinLabel: item.MinLabel,
			MaxLabel: item.MaxLabel,
			Order:    i + 1,
		}
		if err := validateShape(&questions[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", item.ID, err)
		}
	}

	if err := s.store.UpsertBatch(ctx, questions); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return questions, nil
}

// SeedDefaults merges the built-in default set into the current one, upserting
// by id. Additive: custom questions are never cleared.
func (s *QuestionService) SeedDefaults(ctx context.Context) error {
	if err := s.store.UpsertBatch(ctx, model.DefaultQuestions()); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *QuestionService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, questionCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Question cache invalidation failed")
	}
}

func convertOptions(payload []model.OptionPayload) []model.Option {
	if len(payload) == 0 {
		return nil
	}
	options := make([]model.Option, len(payload))
	for i, p := range payload {
		options[i] = model.Option{ID: p.ID, Text: p.Text, Value: p.Value}
	}
	return options
}

// validateShape enforces the kind-specific parameter rules that binding tags
// cannot express.
func validateShape(q *model.Question) error {
	switch q.Type {
	case model.QuestionTypeSingle, model.QuestionTypeMultiple:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: choice question needs options", ErrInvalidQuestionShape)
		}
	case model.QuestionTypeScale:
		if q.Min <= 0 || q.Max <= q.Min {
			return fmt.Errorf("%w: scale bounds need 0 < min < max", ErrInvalidQuestionShape)
		}
	case model.QuestionTypeText:
		// No kind-specific parameters.
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestionShape, q.Type)
	}
	return nil
}

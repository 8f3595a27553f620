package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
	"github.com/valdisnipers-collab/immuno-survey/internal/survey"
)

// ErrAlreadySubmitted signals that this device already holds a submission.
// It is an alternate success path: the caller still reaches the completion
// screen, it just must not expect a new record.
var ErrAlreadySubmitted = errors.New("device already submitted")

// SubmissionService is the submission gate: it runs the duplicate check,
// issues the single insert and maintains the durable voted flag.
type SubmissionService struct {
	subs   repository.SubmissionStore
	voted  repository.VotedFlagStore
	log    zerolog.Logger
	notify func(count int)
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(subs repository.SubmissionStore, voted repository.VotedFlagStore, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{subs: subs, voted: voted, log: log}
}

// SetNotify registers a callback fired with the new total after every
// accepted submission. Used by the live results stream.
func (s *SubmissionService) SetNotify(fn func(count int)) {
	s.notify = fn
}

// Submit packages the engine's answers and persists them once per device.
//
// Duplicate detection is check-then-insert: best effort, with the store's own
// uniqueness enforcement as the backstop. On a duplicate the voted flag is
// still set so later visits skip ahead. On a write failure nothing is marked
// and the session's answers stay intact for a retry.
func (s *SubmissionService) Submit(ctx context.Context, engine *survey.Engine, deviceID string) (*model.Submission, error) {
	sub := engine.BuildSubmission(deviceID, time.Now().UTC())

	exists, err := s.subs.ExistsByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		s.markVoted(ctx, deviceID)
		return nil, ErrAlreadySubmitted
	}

	if err := s.subs.Insert(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateDevice) {
			// Lost the check-then-insert race; same outcome as the check firing.
			s.markVoted(ctx, deviceID)
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	s.markVoted(ctx, deviceID)

	if s.notify != nil {
		if count, err := s.subs.Count(ctx); err == nil {
			s.notify(count)
		}
	}

	s.log.Info().
		Str("device_id", deviceID).
		Int("answers", len(sub.Answers)).
		Msg("Submission stored")
	return sub, nil
}

// HasVoted reports whether this device should skip straight to the completion
// screen: either the durable flag is set or a submission record exists.
func (s *SubmissionService) HasVoted(ctx context.Context, deviceID string) (bool, error) {
	flagged, err := s.voted.Get(ctx, deviceID)
	if err != nil {
		s.log.Warn().Err(err).Msg("Voted flag read failed")
	} else if flagged {
		return true, nil
	}
	return s.subs.ExistsByDevice(ctx, deviceID)
}

// Count returns the total number of stored submissions.
func (s *SubmissionService) Count(ctx context.Context) (int, error) {
	return s.subs.Count(ctx)
}

// List returns all stored submissions in insertion order.
func (s *SubmissionService) List(ctx context.Context) ([]model.Submission, error) {
	return s.subs.List(ctx)
}

// markVoted sets the durable flag, logging instead of failing: the flag is a
// convenience for later visits, not part of the submission's success.
func (s *SubmissionService) markVoted(ctx context.Context, deviceID string) {
	if err := s.voted.Set(ctx, deviceID); err != nil {
		s.log.Warn().Err(err).Str("device_id", deviceID).Msg("Voted flag write failed")
	}
}

package service

import (
	"context"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/survey"
)

// SurveyService opens participant sessions over a snapshot of the current
// question set and resolves them for the session endpoints.
type SurveyService struct {
	questions *QuestionService
	manager   *survey.Manager
}

// NewSurveyService creates a new SurveyService.
func NewSurveyService(questions *QuestionService, manager *survey.Manager) *SurveyService {
	return &SurveyService{questions: questions, manager: manager}
}

// StartSession snapshots the question list, computes the device fingerprint
// from the given signals and registers a new session.
func (s *SurveyService) StartSession(ctx context.Context, device model.DeviceClass, userAgent string, screenW, screenH int) (*survey.Session, error) {
	questions := s.questions.ListOrDefaults(ctx)

	engine, err := survey.NewEngine(questions, device)
	if err != nil {
		return nil, err
	}

	deviceID := survey.Fingerprint(userAgent, screenW, screenH)
	return s.manager.Create(engine, deviceID), nil
}

// Session resolves a live session by id.
func (s *SurveyService) Session(id string) (*survey.Session, bool) {
	return s.manager.Get(id)
}

// EndSession discards a session after a successful submit.
func (s *SurveyService) EndSession(id string) {
	s.manager.Remove(id)
}

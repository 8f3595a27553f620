package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/response"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
	"github.com/valdisnipers-collab/immuno-survey/internal/survey"
	"github.com/valdisnipers-collab/immuno-survey/internal/validator"
)

// SurveyHandler handles the public participant endpoints: question list,
// session lifecycle and submission.
type SurveyHandler struct {
	surveyService     *service.SurveyService
	questionService   *service.QuestionService
	submissionService *service.SubmissionService
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(
	surveyService *service.SurveyService,
	questionService *service.QuestionService,
	submissionService *service.SubmissionService,
) *SurveyHandler {
	return &SurveyHandler{
		surveyService:     surveyService,
		questionService:   questionService,
		submissionService: submissionService,
	}
}

// GetQuestions godoc
// GET /api/v1/survey/questions
// Returns the ordered question set, falling back to the built-in defaults
// when the backend is empty or unreachable.
func (h *SurveyHandler) GetQuestions(c *gin.Context) {
	questions := h.questionService.ListOrDefaults(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// GetStatus godoc
// GET /api/v1/survey/status?screen_width=&screen_height=
// Reports whether this device already voted, so the client can skip straight
// to the completion screen on launch.
func (h *SurveyHandler) GetStatus(c *gin.Context) {
	width, _ := strconv.Atoi(c.Query("screen_width"))
	height, _ := strconv.Atoi(c.Query("screen_height"))
	deviceID := survey.Fingerprint(c.Request.UserAgent(), width, height)

	voted, err := h.submissionService.HasVoted(c.Request.Context(), deviceID)
	if err != nil {
		// Degrade: an unreachable backend must not trap the participant.
		voted = false
	}

	response.Success(c, http.StatusOK, gin.H{
		"device_id": deviceID,
		"has_voted": voted,
	})
}

// StartSession godoc
// POST /api/v1/survey/sessions
// Opens a session over a snapshot of the current question set. A device that
// already voted gets no session, only the has_voted marker.
func (h *SurveyHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	deviceID := survey.Fingerprint(c.Request.UserAgent(), req.ScreenWidth, req.ScreenHeight)
	if voted, err := h.submissionService.HasVoted(c.Request.Context(), deviceID); err == nil && voted {
		response.Success(c, http.StatusOK, gin.H{"has_voted": true})
		return
	}

	sess, err := h.surveyService.StartSession(
		c.Request.Context(),
		model.DeviceClass(req.DeviceClass),
		c.Request.UserAgent(),
		req.ScreenWidth,
		req.ScreenHeight,
	)
	if err != nil {
		if errors.Is(err, survey.ErrNoQuestions) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrSurveyEmpty)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	response.Success(c, http.StatusCreated, gin.H{
		"has_voted": false,
		"session":   sessionState(sess),
	})
}

// GetSession godoc
// GET /api/v1/survey/sessions/:id
// Returns the current position and the rendered widget for the current question.
func (h *SurveyHandler) GetSession(c *gin.Context) {
	sess, ok := h.surveyService.Session(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	response.Success(c, http.StatusOK, gin.H{"session": sessionState(sess)})
}

// Answer godoc
// POST /api/v1/survey/sessions/:id/answer
// Upserts the answer for a question. Mobile sessions auto-advance past
// single-choice and scale questions.
func (h *SurveyHandler) Answer(c *gin.Context) {
	sess, ok := h.surveyService.Session(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	advanced, err := sess.Engine.Answer(req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, survey.ErrUnknownQuestion):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidAnswer)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"auto_advanced": advanced,
		"session":       sessionState(sess),
	})
}

// Advance godoc
// POST /api/v1/survey/sessions/:id/advance
// Moves one question forward. The current question must be answered (text
// questions always count as answered). Clamped at the last position.
func (h *SurveyHandler) Advance(c *gin.Context) {
	sess, ok := h.surveyService.Session(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if !sess.Engine.IsCurrentAnswered() {
		response.Fail(c, http.StatusConflict, response.ErrQuestionUnanswered)
		return
	}

	sess.Engine.Advance()
	response.Success(c, http.StatusOK, gin.H{"session": sessionState(sess)})
}

// Retreat godoc
// POST /api/v1/survey/sessions/:id/retreat
// Moves one question back, clamped at the first position.
func (h *SurveyHandler) Retreat(c *gin.Context) {
	sess, ok := h.surveyService.Session(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Engine.Retreat()
	response.Success(c, http.StatusOK, gin.H{"session": sessionState(sess)})
}

// Submit godoc
// POST /api/v1/survey/sessions/:id/submit
// Runs the submission gate. A duplicate is an alternate success: the client
// still reaches the completion screen. On a backend write failure the session
// and its answers stay intact for a retry.
func (h *SurveyHandler) Submit(c *gin.Context) {
	sess, ok := h.surveyService.Session(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Submitting {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}
	sess.Submitting = true
	defer func() { sess.Submitting = false }()

	sub, err := h.submissionService.Submit(c.Request.Context(), sess.Engine, sess.DeviceID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			h.surveyService.EndSession(sess.ID)
			response.Success(c, http.StatusOK, gin.H{
				"submitted":         false,
				"already_submitted": true,
				"message":           response.GetMessage(response.ErrAlreadySubmitted),
			})
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrSubmitFailed)
		return
	}

	h.surveyService.EndSession(sess.ID)
	response.Success(c, http.StatusCreated, gin.H{
		"submitted":         true,
		"already_submitted": false,
		"answers":           len(sub.Answers),
	})
}

// sessionState renders the session for API responses. Callers hold the
// session lock.
func sessionState(sess *survey.Session) gin.H {
	return gin.H{
		"id":          sess.ID,
		"position":    sess.Engine.Position(),
		"total":       len(sess.Engine.Questions()),
		"can_advance": sess.Engine.IsCurrentAnswered(),
		"current":     sess.Engine.CurrentView(),
	}
}

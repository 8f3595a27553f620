package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
	"github.com/valdisnipers-collab/immuno-survey/internal/response"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
	"github.com/valdisnipers-collab/immuno-survey/internal/validator"
)

// QuestionHandler handles the admin question editor endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/admin/questions
// Lists the question set in display order.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions := h.questionService.ListOrDefaults(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CreateQuestion godoc
// POST /api/v1/admin/questions
// Adds a question with a fresh server-assigned id at the end of the order.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestionShape) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// UpdateQuestion godoc
// PUT /api/v1/admin/questions/:id
// Replaces all mutable fields of an existing question; the id is immutable.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrInvalidQuestionShape):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/admin/questions/:id?confirm=true
// Removes a question. Irreversible, so the explicit confirm flag is required.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.Fail(c, http.StatusBadRequest, response.ErrConfirmationMissing)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// SaveAllQuestions godoc
// PUT /api/v1/admin/questions
// Persists a reordered list: every question's order field is rewritten to its
// position in the payload.
func (h *QuestionHandler) SaveAllQuestions(c *gin.Context) {
	var req model.SaveAllRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.questionService.SaveAll(c.Request.Context(), req.Questions)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestionShape) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// SeedDefaults godoc
// POST /api/v1/admin/questions/seed
// Merges the built-in default set into the current one, upserting by id.
func (h *QuestionHandler) SeedDefaults(c *gin.Context) {
	if err := h.questionService.SeedDefaults(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	questions := h.questionService.ListOrDefaults(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valdisnipers-collab/immuno-survey/internal/response"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
)

// ExportHandler handles the admin results endpoints.
type ExportHandler struct {
	exportService     *service.ExportService
	submissionService *service.SubmissionService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService, submissionService *service.SubmissionService) *ExportHandler {
	return &ExportHandler{exportService: exportService, submissionService: submissionService}
}

// GetResponseCount godoc
// GET /api/v1/admin/responses/count
// Returns the total number of stored submissions for the dashboard card.
func (h *ExportHandler) GetResponseCount(c *gin.Context) {
	count, err := h.submissionService.Count(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// DownloadExport godoc
// GET /api/v1/admin/export
// Streams the flattened results workbook as an xlsx download.
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	file, err := h.exportService.BuildXLSX(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

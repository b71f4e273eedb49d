package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/service"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
	"github.com/edusuite/exam-seating-api/pkg/response"
)

type exportService interface {
	CreateJob(ctx context.Context, planID string, format dto.ExportFormat) (*service.ExportJob, error)
	Job(jobID string) (*service.ExportJob, error)
	ResolveToken(token string) (*os.File, string, error)
}

// ExportHandler exposes asynchronous plan export endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Create godoc
// @Summary Enqueue an export of a saved plan
// @Tags Exports
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body dto.CreateExportRequest true "Export payload"
// @Success 202 {object} response.Envelope
// @Router /seating/plans/{id}/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	if !validExportFormat(req.Format) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be chart, stickers or csv"))
		return
	}
	job, err := h.service.CreateJob(c.Request.Context(), c.Param("id"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, toJobResponse(job), nil)
}

// Status godoc
// @Summary Get export job status
// @Tags Exports
// @Produce json
// @Param jobId path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /seating/export-jobs/{jobId} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.service.Job(c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toJobResponse(job), nil)
}

// Download godoc
// @Summary Download a rendered export via signed token
// @Tags Exports
// @Produce application/octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Router /seating/exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, relPath, err := h.service.ResolveToken(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file"))
		return
	}

	filename := filepath.Base(relPath)
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(filename), file, map[string]string{
		"Content-Disposition": `attachment; filename="` + filename + `"`,
	})
}

func toJobResponse(job *service.ExportJob) dto.ExportJobResponse {
	return dto.ExportJobResponse{
		JobID:  job.ID,
		PlanID: job.PlanID,
		Format: string(job.Format),
		Status: string(job.Status),
		URL:    job.URL,
		Error:  job.Error,
	}
}

func validExportFormat(format dto.ExportFormat) bool {
	switch format {
	case dto.ExportChart, dto.ExportStickers, dto.ExportCSV:
		return true
	}
	return false
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

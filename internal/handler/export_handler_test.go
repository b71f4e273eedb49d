package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/service"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

type exportServiceMock struct {
	job       *service.ExportJob
	createErr error
	tokenFile string
}

func (m *exportServiceMock) CreateJob(ctx context.Context, planID string, format dto.ExportFormat) (*service.ExportJob, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.job, nil
}

func (m *exportServiceMock) Job(jobID string) (*service.ExportJob, error) {
	if m.job == nil || m.job.ID != jobID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return m.job, nil
}

func (m *exportServiceMock) ResolveToken(token string) (*os.File, string, error) {
	if m.tokenFile == "" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "invalid download token")
	}
	f, err := os.Open(m.tokenFile)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(m.tokenFile), nil
}

func TestExportHandlerCreate(t *testing.T) {
	mock := &exportServiceMock{job: &service.ExportJob{ID: "job-1", PlanID: "plan-1", Format: dto.ExportChart, Status: service.ExportStatusPending}}
	h := NewExportHandler(mock)

	c, w := testContext(t, http.MethodPost, "/seating/plans/plan-1/exports", dto.CreateExportRequest{Format: dto.ExportChart})
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.Create(c)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "job-1")
	assert.Contains(t, w.Body.String(), "PENDING")
}

func TestExportHandlerCreateRejectsUnknownFormat(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{})
	c, w := testContext(t, http.MethodPost, "/seating/plans/plan-1/exports", map[string]string{"format": "docx"})
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerStatusNotFound(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{})
	c, w := testContext(t, http.MethodGet, "/seating/export-jobs/missing", nil)
	c.Params = gin.Params{{Key: "jobId", Value: "missing"}}
	h.Status(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seating-chart.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

	h := NewExportHandler(&exportServiceMock{tokenFile: path})
	c, w := testContext(t, http.MethodGet, "/seating/exports/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}
	h.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "seating-chart.pdf")
	assert.Contains(t, w.Body.String(), "%PDF")
}

func TestExportHandlerDownloadBadToken(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{})
	c, w := testContext(t, http.MethodGet, "/seating/exports/bogus", nil)
	c.Params = gin.Params{{Key: "token", Value: "bogus"}}
	h.Download(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/allocator"
	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

type planServiceMock struct {
	summaries []models.PlanSummary
	plan      *models.SeatingPlan
	lookupErr error
	deleteErr error
}

func (m *planServiceMock) ListPlans(ctx context.Context, query dto.PlanQuery) ([]models.PlanSummary, *models.Pagination, error) {
	if query.InstitutionID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "institutionId is required")
	}
	return m.summaries, &models.Pagination{Page: query.Page, PageSize: query.Limit, TotalItems: len(m.summaries), TotalPages: 1}, nil
}

func (m *planServiceMock) GetPlan(ctx context.Context, id string) (*models.SeatingPlan, error) {
	if m.plan == nil || m.plan.ID != id {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
	}
	return m.plan, nil
}

func (m *planServiceMock) DeletePlan(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *planServiceMock) Reopen(ctx context.Context, planID string) (allocator.Draft, error) {
	return allocator.Draft{ID: "d2", Mode: allocator.ModeAutomatic}, nil
}

func (m *planServiceMock) SeatLookup(ctx context.Context, planID, rollNo string) (*dto.SeatLookupResponse, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return &dto.SeatLookupResponse{PlanID: planID, RollNo: rollNo, RoomNo: 1, SeatNo: 3}, nil
}

func TestPlanHandlerList(t *testing.T) {
	mock := &planServiceMock{summaries: []models.PlanSummary{{ID: "plan-1", ExamName: "Finals"}}}
	h := NewPlanHandler(mock)

	c, w := testContext(t, http.MethodGet, "/seating/plans?institutionId=inst-1&page=1&limit=10", nil)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plan-1")
	assert.Contains(t, w.Body.String(), `"pagination"`)
}

func TestPlanHandlerListRequiresInstitution(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{})
	c, w := testContext(t, http.MethodGet, "/seating/plans", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandlerGetNotFound(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{})
	c, w := testContext(t, http.MethodGet, "/seating/plans/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanHandlerDelete(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{})
	c, w := testContext(t, http.MethodDelete, "/seating/plans/plan-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.Delete(c)
	// c.Status only records the code; flush it the way the engine does.
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPlanHandlerReopen(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{})
	c, w := testContext(t, http.MethodPost, "/seating/plans/plan-1/reopen", nil)
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.Reopen(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"d2"`)
}

func TestPlanHandlerSeatLookup(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{})
	c, w := testContext(t, http.MethodGet, "/seating/plans/plan-1/seat?rollNo=102", nil)
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.SeatLookup(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"102"`)
}

func TestPlanHandlerSeatLookupNotFound(t *testing.T) {
	h := NewPlanHandler(&planServiceMock{lookupErr: appErrors.Clone(appErrors.ErrNotFound, "roll number not found")})
	c, w := testContext(t, http.MethodGet, "/seating/plans/plan-1/seat?rollNo=999", nil)
	c.Params = gin.Params{{Key: "id", Value: "plan-1"}}
	h.SeatLookup(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

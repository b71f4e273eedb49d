package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/exam-seating-api/internal/allocator"
	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/models"
	"github.com/edusuite/exam-seating-api/pkg/response"
)

type planService interface {
	ListPlans(ctx context.Context, query dto.PlanQuery) ([]models.PlanSummary, *models.Pagination, error)
	GetPlan(ctx context.Context, id string) (*models.SeatingPlan, error)
	DeletePlan(ctx context.Context, id string) error
	Reopen(ctx context.Context, planID string) (allocator.Draft, error)
	SeatLookup(ctx context.Context, planID, rollNo string) (*dto.SeatLookupResponse, error)
}

// PlanHandler exposes committed-plan endpoints.
type PlanHandler struct {
	service planService
}

// NewPlanHandler builds a new handler.
func NewPlanHandler(service planService) *PlanHandler {
	return &PlanHandler{service: service}
}

// List godoc
// @Summary List saved seating plans
// @Tags Plans
// @Produce json
// @Param institutionId query string true "Institution ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /seating/plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	summaries, pagination, err := h.service.ListPlans(c.Request.Context(), dto.PlanQuery{
		InstitutionID: c.Query("institutionId"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Get godoc
// @Summary Get one saved seating plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /seating/plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// Delete godoc
// @Summary Delete a saved seating plan
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204
// @Router /seating/plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.service.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reopen godoc
// @Summary Reopen a saved plan as a fresh draft
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 201 {object} response.Envelope
// @Router /seating/plans/{id}/reopen [post]
func (h *PlanHandler) Reopen(c *gin.Context) {
	draft, err := h.service.Reopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, draft)
}

// SeatLookup godoc
// @Summary Find a student's seat by roll number
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param rollNo query string true "Roll number"
// @Success 200 {object} response.Envelope
// @Router /seating/plans/{id}/seat [get]
func (h *PlanHandler) SeatLookup(c *gin.Context) {
	found, err := h.service.SeatLookup(c.Request.Context(), c.Param("id"), c.Query("rollNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, found, nil)
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/exam-seating-api/internal/allocator"
	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
	"github.com/edusuite/exam-seating-api/pkg/response"
)

type seatingService interface {
	GenerateAutomatic(ctx context.Context, req dto.GeneratePlanRequest) (allocator.Draft, error)
	CreateManualDraft(ctx context.Context, req dto.CreateDraftRequest) (allocator.Draft, error)
	GetDraft(id string) (allocator.Draft, error)
	Availability(draftID string, roomNo int) (allocator.SideAvailability, error)
	AssignClass(ctx context.Context, draftID string, req dto.AssignClassRequest) (allocator.Draft, allocator.ClassAssignment, error)
	BindInvigilator(ctx context.Context, draftID string, roomNo int, req dto.BindInvigilatorRequest) (allocator.Draft, error)
	Duties(draftID, teacherID string) ([]models.InvigilatorDuty, error)
	Commit(ctx context.Context, draftID string) (*models.SeatingPlan, error)
}

// SeatingHandler exposes draft allocation endpoints.
type SeatingHandler struct {
	service seatingService
}

// NewSeatingHandler builds a new handler.
func NewSeatingHandler(service seatingService) *SeatingHandler {
	return &SeatingHandler{service: service}
}

// Generate godoc
// @Summary Generate an automatic seating draft
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlanRequest true "Generation payload"
// @Success 201 {object} response.Envelope
// @Router /seating/plans/generate [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	draft, err := h.service.GenerateAutomatic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, draft)
}

// CreateDraft godoc
// @Summary Open a manual bench-allocation draft
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.CreateDraftRequest true "Draft payload"
// @Success 201 {object} response.Envelope
// @Router /seating/drafts [post]
func (h *SeatingHandler) CreateDraft(c *gin.Context) {
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	draft, err := h.service.CreateManualDraft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, draft)
}

// GetDraft godoc
// @Summary Get a live draft
// @Tags Seating
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /seating/drafts/{id} [get]
func (h *SeatingHandler) GetDraft(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Availability godoc
// @Summary Report free bench sides of a draft room
// @Tags Seating
// @Produce json
// @Param id path string true "Draft ID"
// @Param roomNo path int true "Room number"
// @Success 200 {object} response.Envelope
// @Router /seating/drafts/{id}/rooms/{roomNo}/availability [get]
func (h *SeatingHandler) Availability(c *gin.Context) {
	roomNo, err := roomNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	avail, err := h.service.Availability(c.Param("id"), roomNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, avail, nil)
}

// AssignClass godoc
// @Summary Assign a class to a bench side
// @Tags Seating
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.AssignClassRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /seating/drafts/{id}/assign [post]
func (h *SeatingHandler) AssignClass(c *gin.Context) {
	var req dto.AssignClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	draft, assignment, err := h.service.AssignClass(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"draft":      draft,
		"assignment": assignment,
	}, nil)
}

// BindInvigilator godoc
// @Summary Bind a room-level invigilator
// @Tags Seating
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param roomNo path int true "Room number"
// @Param payload body dto.BindInvigilatorRequest true "Invigilator payload"
// @Success 200 {object} response.Envelope
// @Router /seating/drafts/{id}/rooms/{roomNo}/invigilator [put]
func (h *SeatingHandler) BindInvigilator(c *gin.Context) {
	roomNo, err := roomNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.BindInvigilatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid invigilator payload"))
		return
	}
	draft, err := h.service.BindInvigilator(c.Request.Context(), c.Param("id"), roomNo, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Duties godoc
// @Summary List rooms a teacher supervises in a draft
// @Tags Seating
// @Produce json
// @Param id path string true "Draft ID"
// @Param teacherId path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /seating/drafts/{id}/invigilators/{teacherId} [get]
func (h *SeatingHandler) Duties(c *gin.Context) {
	duties, err := h.service.Duties(c.Param("id"), c.Param("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duties, nil)
}

// Commit godoc
// @Summary Commit a draft as a saved seating plan
// @Tags Seating
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} response.Envelope
// @Router /seating/drafts/{id}/commit [post]
func (h *SeatingHandler) Commit(c *gin.Context) {
	plan, err := h.service.Commit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

func roomNoParam(c *gin.Context) (int, error) {
	roomNo, err := strconv.Atoi(c.Param("roomNo"))
	if err != nil || roomNo <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "roomNo must be a positive integer")
	}
	return roomNo, nil
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/exam-seating-api/internal/dto"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
	"github.com/edusuite/exam-seating-api/pkg/response"
)

type rosterService interface {
	Invalidate(ctx context.Context, institutionID, classLabel string) error
}

// RosterHandler exposes roster cache maintenance endpoints.
type RosterHandler struct {
	service rosterService
}

// NewRosterHandler builds a new handler.
func NewRosterHandler(service rosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

// Invalidate godoc
// @Summary Drop cached rosters after enrollment changes
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.InvalidateRosterRequest true "Invalidation payload"
// @Success 200 {object} response.Envelope
// @Router /seating/roster/invalidate [post]
func (h *RosterHandler) Invalidate(c *gin.Context) {
	var req dto.InvalidateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid invalidation payload"))
		return
	}
	if req.InstitutionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "institutionId is required"))
		return
	}
	if err := h.service.Invalidate(c.Request.Context(), req.InstitutionID, req.ClassLabel); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"invalidated": true}, nil)
}

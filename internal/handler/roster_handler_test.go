package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/dto"
)

type rosterServiceMock struct {
	institutionID string
	classLabel    string
}

func (m *rosterServiceMock) Invalidate(ctx context.Context, institutionID, classLabel string) error {
	m.institutionID = institutionID
	m.classLabel = classLabel
	return nil
}

func TestRosterHandlerInvalidate(t *testing.T) {
	mock := &rosterServiceMock{}
	h := NewRosterHandler(mock)

	c, w := testContext(t, http.MethodPost, "/seating/roster/invalidate", dto.InvalidateRosterRequest{
		InstitutionID: "inst-1",
		ClassLabel:    "10-A",
	})
	h.Invalidate(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inst-1", mock.institutionID)
	assert.Equal(t, "10-A", mock.classLabel)
}

func TestRosterHandlerInvalidateRequiresInstitution(t *testing.T) {
	h := NewRosterHandler(&rosterServiceMock{})
	c, w := testContext(t, http.MethodPost, "/seating/roster/invalidate", dto.InvalidateRosterRequest{ClassLabel: "10-A"})
	h.Invalidate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

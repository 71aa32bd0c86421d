package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/api/models"
)

func TestProblem_Write(t *testing.T) {
	problem := models.NewBadRequest("snap_abc123", "bad scene", []models.FieldError{
		{Field: "scene", Message: "must be one of: work, travel", Code: "invalid_value"},
	})
	problem.Instance = "/v1/context"

	w := httptest.NewRecorder()
	problem.Write(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "snap_abc123", w.Header().Get("X-Request-Id"))

	var decoded models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, models.ProblemTypeValidation, decoded.Type)
	assert.Equal(t, "bad scene", decoded.Detail)
	assert.Equal(t, "/v1/context", decoded.Instance)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "scene", decoded.Errors[0].Field)
}

func TestProblemConstructors(t *testing.T) {
	tests := []struct {
		name       string
		problem    *models.Problem
		wantStatus int
		wantType   string
	}{
		{"not found", models.NewNotFound("id", "gone"), http.StatusNotFound, models.ProblemTypeNotFound},
		{"too many requests", models.NewTooManyRequests("id", "slow down"), http.StatusTooManyRequests, models.ProblemTypeTooManyRequests},
		{"internal", models.NewInternalError("id", "oops"), http.StatusInternalServerError, models.ProblemTypeInternal},
		{"unavailable", models.NewServiceUnavailable("id", "no fix"), http.StatusServiceUnavailable, models.ProblemTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.problem.Status)
			assert.Equal(t, tt.wantType, tt.problem.Type)
			assert.Equal(t, "id", tt.problem.TraceID)
		})
	}
}

func TestProblem_OmitsEmptyFields(t *testing.T) {
	problem := models.NewProblem(models.ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, "snap_x")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "detail")
	assert.NotContains(t, string(data), "instance")
	assert.NotContains(t, string(data), "errors")
}

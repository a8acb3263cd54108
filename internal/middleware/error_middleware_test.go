package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body.Error.Code
}

func TestHandleAPIError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, "RES_001"},
		{"module not found", apperrors.ErrModuleNotFound, http.StatusNotFound, "RES_001"},
		{"not enrolled", apperrors.ErrEnrollmentNotFound, http.StatusNotFound, "ENR_002"},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusConflict, "ENR_001"},
		{"duplicate feedback", apperrors.ErrDuplicateFeedback, http.StatusConflict, "RES_002"},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict, "RES_002"},
		{"invalid grade", apperrors.ErrInvalidGrade, http.StatusBadRequest, "VAL_002"},
		{"invalid rating", apperrors.ErrInvalidRating, http.StatusBadRequest, "VAL_002"},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, "VAL_001"},
		{"consistency failure", apperrors.ErrConsistencyFailure, http.StatusConflict, "ENR_003"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, "AUTH_003"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, "AUTH_005"},
		{"unknown error", errors.New("pq: something exploded"), http.StatusInternalServerError, "SRV_001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestHandleAPIError_WrappedErrors(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid email address")
	status, code := handleError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VAL_001", code)
}

func TestHandleAPIError_InternalDetailsNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.NotContains(t, recorder.Body.String(), "10.0.0.5")
}

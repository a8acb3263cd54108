package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Database constraint
// failures never reach this point untranslated; anything unrecognized is a
// 500 with the error logged, not leaked.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrModuleNotFound,
		apperrors.ErrAttachmentNotFound,
		apperrors.ErrFeedbackNotFound,
		apperrors.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrNotEnrolled):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotEnrolled, "User is not enrolled in this course")

	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "User already enrolled in this course")

	case errors.Is(err, apperrors.ErrDuplicateFeedback):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Feedback already submitted for this course")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")

	case errors.Is(err, apperrors.ErrInvalidGrade),
		errors.Is(err, apperrors.ErrInvalidRating):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRange, err.Error())

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrConsistencyFailure):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Progress consistency failure")
		respondError(c, http.StatusConflict, dto.ErrorCodeConsistencyFailure, "Progress could not be recomputed, please retry")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

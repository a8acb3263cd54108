package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment and progress operations. The
// acting user always comes from the token, never from the payload.
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Enroll enrolls the authenticated user in a course
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// Unenroll removes the authenticated user's enrollment
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrollment removed"))
}

// ListMyEnrollments retrieves the authenticated user's enrollments
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	enrollments, err := c.enrollmentService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// GetProgress returns the authenticated user's stored progress in a course
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.enrollmentService.GetProgress(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(progress))
}

// RefreshProgress recomputes and persists the authenticated user's progress
func (c *EnrollmentController) RefreshProgress(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.enrollmentService.RefreshProgress(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(progress))
}

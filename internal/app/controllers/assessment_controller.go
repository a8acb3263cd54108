package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// AssessmentController handles grade operations
type AssessmentController struct {
	assessmentService services.AssessmentService
}

// NewAssessmentController creates a new AssessmentController
func NewAssessmentController(assessmentService services.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentService: assessmentService}
}

// SubmitGrade records a grade on a module. Students grade themselves; an
// admin may grade on behalf of a learner by passing userId in the payload.
func (c *AssessmentController) SubmitGrade(ctx *gin.Context) {
	actorID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	var req dto.SubmitGradeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	targetID := actorID
	if req.UserID != nil && *req.UserID != actorID {
		if models.RoleType(ctx.GetString(middleware.ContextRole)) != models.RoleAdmin {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
		targetID = *req.UserID
	}

	resp, err := c.assessmentService.SubmitGrade(ctx, targetID, moduleID, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListMyAssessments retrieves the authenticated user's assessments in a course
func (c *AssessmentController) ListMyAssessments(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	assessments, err := c.assessmentService.ListByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assessments))
}

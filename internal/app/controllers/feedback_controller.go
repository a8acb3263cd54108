package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// FeedbackController handles course feedback operations
type FeedbackController struct {
	feedbackService services.FeedbackService
	authService     services.AuthService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService, authService services.AuthService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		authService:     authService,
	}
}

// Submit records the authenticated user's feedback on a course
func (c *FeedbackController) Submit(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	feedback, err := c.feedbackService.Submit(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(feedback))
}

// ListByCourse retrieves all feedback of a course
func (c *FeedbackController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	feedbacks, err := c.feedbackService.ListByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feedbacks))
}

// Delete removes feedback; allowed for the author or an admin
func (c *FeedbackController) Delete(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	feedbackID, ok := parseIDParam(ctx, "feedbackId")
	if !ok {
		return
	}

	user, err := c.authService.GetUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.feedbackService.Delete(ctx, user, feedbackID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Feedback deleted"))
}

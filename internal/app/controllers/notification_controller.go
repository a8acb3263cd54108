package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// NotificationController handles notification operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List retrieves the authenticated user's notifications; ?unread=true
// restricts to unread ones
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := c.notificationService.List(ctx, userID, unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// CountUnread returns the authenticated user's unread notification count
func (c *NotificationController) CountUnread(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	count, err := c.notificationService.CountUnread(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: count}))
}

// MarkRead flips one of the authenticated user's notifications to read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	notificationID, ok := parseIDParam(ctx, "notificationId")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification marked as read"))
}

// MarkAllRead flips all of the authenticated user's unread notifications
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	count, err := c.notificationService.MarkAllRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"markedRead": count}))
}

// Delete removes one of the authenticated user's notifications
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	notificationID, ok := parseIDParam(ctx, "notificationId")
	if !ok {
		return
	}

	if err := c.notificationService.Delete(ctx, userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification deleted"))
}

// Create sends a notification to one user (admin only)
func (c *NotificationController) Create(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	notification, err := c.notificationService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(notification))
}

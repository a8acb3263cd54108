package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
)

// AttachmentController handles module attachment operations
type AttachmentController struct {
	attachmentService services.AttachmentService
}

// NewAttachmentController creates a new AttachmentController
func NewAttachmentController(attachmentService services.AttachmentService) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService}
}

// Upload stores a file on a module (admin only)
func (c *AttachmentController) Upload(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file upload").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attachment, err := c.attachmentService.Upload(ctx, moduleID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(attachment))
}

// Get retrieves attachment metadata
func (c *AttachmentController) Get(ctx *gin.Context) {
	attachmentID, ok := parseIDParam(ctx, "attachmentId")
	if !ok {
		return
	}

	attachment, err := c.attachmentService.Get(ctx, attachmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attachment))
}

// ListByModule retrieves all attachments of a module
func (c *AttachmentController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	attachments, err := c.attachmentService.ListByModule(ctx, moduleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attachments))
}

// Delete removes an attachment (admin only)
func (c *AttachmentController) Delete(ctx *gin.Context) {
	attachmentID, ok := parseIDParam(ctx, "attachmentId")
	if !ok {
		return
	}

	if err := c.attachmentService.Delete(ctx, attachmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Attachment deleted"))
}

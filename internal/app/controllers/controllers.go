// Package controllers contains the HTTP handlers. Handlers bind and
// validate input, resolve the caller's identity from the auth middleware,
// delegate to the services, and translate errors through HandleAPIError.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
)

// parseIDParam parses a positive int64 path parameter. On failure it writes
// the 400 response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || value <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return value, true
}

// bindJSON binds the request body. On failure it writes the 400 response
// and returns false.
func bindJSON(ctx *gin.Context, target interface{}) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

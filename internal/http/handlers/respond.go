package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies keep the original dashboard contract: a success flag and
// a human message. Validation failures attach field details on top.

func RespondError(ctx *gin.Context, status int, message string, details interface{}) {
	body := gin.H{
		"success": false,
		"message": message,
	}

	if details != nil {
		body["details"] = details
	}
	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, message, details)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message, nil)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message, nil)
}

// RespondInternal hides store/hash detail from the client; the cause is
// logged where the failure happened.
func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message, nil)
}

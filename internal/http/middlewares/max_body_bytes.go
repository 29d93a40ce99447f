package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps every request body at limit bytes. The cap has to cover
// certificate uploads as well, so limit is sized from MAX_UPLOAD_BYTES rather
// than a typical JSON payload; an oversized body surfaces as a read error in
// whichever handler consumes it.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

		ctx.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	resp "postboard/internal/transport/http/response"
)

// PanicResponse 作为 ginzap.CustomRecoveryWithZap 的回调：日志由 ginzap 负责，这里只写统一响应
func PanicResponse(c *gin.Context, _ any) {
	resp.Abort(c, resp.CodeServerError, "internal error")
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "postboard/internal/transport/http/response"
)

// RateLimit 全局令牌桶；rps <= 0 表示不限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, resp.CodeTooManyRequests, "too many requests")
	}
}

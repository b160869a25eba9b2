package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"postboard/internal/core/config"
	"postboard/internal/core/server"
	mdw "postboard/internal/transport/http/middleware"
)

// Options 请求级限制，零值表示不限制
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func OptionsFrom(h config.HTTP) Options {
	return Options{
		RateLimitRPS:   h.RateLimitRPS,
		RateLimitBurst: h.RateLimitBurst,
		MaxConcurrent:  h.MaxConcurrent,
		MaxBodyBytes:   h.MaxBodyBytes,
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
	}
}

func NewAPIEngine(l *zap.Logger, opts Options, mods ...APIModule) *gin.Engine {
	r := server.NewRouter(l, mdw.PanicResponse)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
		mdw.ConcurrencyLimit(opts.MaxConcurrent),
		mdw.MaxBodyBytes(opts.MaxBodyBytes),
		mdw.Timeout(opts.RequestTimeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	NewRegistry(mods...).MountAll(&r.RouterGroup)
	return r
}

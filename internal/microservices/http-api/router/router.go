package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"comicvault/internal/microservices/http-api/handler"
	"comicvault/internal/microservices/http-api/middleware"
	"comicvault/internal/microservices/http-api/service"
)

type Options struct {
	RequestTimeout time.Duration
	ExportDir      string
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// New assembles the gin engine. Everything the handlers need is passed in.
func New(svc service.ComicService, logger *slog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	health := handler.NewHealthHandler(svc)
	r.GET("/health", health.Check)

	comics := handler.NewComicHandler(svc, logger, opts.RequestTimeout, opts.ExportDir)
	comics.RegisterRoutes(r.Group("/comics"), middleware.RequireToken(opts.JWTSecret))

	return r
}

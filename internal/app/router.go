package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/cohortlab/cohortlab/backend/go-services/handlers"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/middleware"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

var startTime = time.Now()

// Deps are the optional backing clients probed by /ready. Nil means not configured.
type Deps struct {
	Mongo *mongo.Client
	Redis *redis.Client
	Admin middleware.Verifier
}

// NewRouter builds the gin engine with the edge middleware and every route.
func NewRouter(cfg *config.Config, svcs Services, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(logger.L(), cfg.IsDevelopment()),
		middleware.RequestLogger(logger.L()),
		middleware.RequestMetrics(),
		middleware.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && deps.Redis != nil {
			r.Use(middleware.RedisRateLimitMiddleware(deps.Redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RatePerSecond(), cfg.RateLimit.MaxRequests))
		}
	}
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      response.StatusSuccess,
			"message":     "CohortLab Backend API is running!",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Environment,
			"uptime":      time.Since(startTime).String(),
		})
	})
	r.GET("/ready", readiness(deps))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	var admin gin.HandlerFunc
	if deps.Admin != nil {
		admin = middleware.AuthMiddleware(deps.Admin)
	}
	api := r.Group("/api")
	handlers.NewNewsletterHandler(svcs.Newsletter).Register(api.Group("/newsletter"), admin)
	handlers.NewDeveloperHandler(svcs.Developer).Register(api.Group("/developer"), admin)
	handlers.NewMarketerHandler(svcs.Marketer).Register(api.Group("/marketer"), admin)
	handlers.NewPartnerHandler(svcs.Partner).Register(api.Group("/partner"), admin)
	handlers.NewConsultancyHandler(svcs.Consultancy).Register(api.Group("/consultancy"), admin)
	handlers.NewBookCallHandler(svcs.BookCall).Register(api.Group("/book-call"), admin)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Route %s not found", c.Request.URL.RequestURI()), "")
	})
	return r
}

// readiness reports 200 only when every configured dependency answers a ping.
func readiness(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		checks := map[string]string{}
		if deps.Mongo != nil {
			if err := deps.Mongo.Ping(ctx, readpref.Primary()); err != nil {
				checks["mongodb"] = err.Error()
				ready = false
			} else {
				checks["mongodb"] = "ok"
			}
		} else {
			checks["mongodb"] = "memory"
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				ready = false
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "disabled"
		}

		if !ready {
			response.Send(c, http.StatusServiceUnavailable, response.Envelope{Message: "not ready", Data: checks})
			return
		}
		response.Send(c, http.StatusOK, response.Envelope{Message: "ready", Data: checks})
	}
}

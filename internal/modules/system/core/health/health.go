package health

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/pkg/cron"
	"github.com/studydesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Pinger is an optional dependency reported by the liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes mounts the public liveness probe and the authenticated
// cron inspection endpoints. A nil cache is left out of the probe.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, cache Pinger, sched *cron.Scheduler, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.PingContext(ctx) == nil
		body := gin.H{"database": dbOK}
		healthy := dbOK

		if cache != nil {
			cacheOK := cache.Ping(ctx) == nil
			body["redis"] = cacheOK
			healthy = healthy && cacheOK
		}

		body["status"] = "ok"
		code := http.StatusOK
		if !healthy {
			body["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, body)
	})

	cronGroup := rg.Group("/health/cron", authMW)
	cronGroup.GET("", func(c *gin.Context) {
		response.OK(c, sched.List())
	})
	cronGroup.POST("/run/:name", func(c *gin.Context) {
		if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			if errors.Is(err, cron.ErrJobNotFound) {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.InternalError(c, err)
			return
		}
		response.OK(c, gin.H{"message": "job triggered"})
	})
}

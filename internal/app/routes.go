package app

import (
	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/modules/auth/auth"
	"github.com/studydesk/core/internal/modules/auth/user"
	"github.com/studydesk/core/internal/modules/content/note"
	"github.com/studydesk/core/internal/modules/content/tag"
	"github.com/studydesk/core/internal/modules/stats/overview"
	"github.com/studydesk/core/internal/modules/storage/upload"
	"github.com/studydesk/core/internal/modules/study/reminder"
	"github.com/studydesk/core/internal/modules/study/timer"
	"github.com/studydesk/core/internal/modules/system/core/health"
	"github.com/studydesk/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")
	if a.redis != nil {
		api.Use(middleware.RateLimit(a.redis.Raw(), db, a.logger))
		api.Use(middleware.Idempotence(a.redis.Raw()))
	}
	authMW := middleware.Auth(db)

	timerSvc := timer.NewService(db)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db, a.store, user.WithLogger(a.logger))).RegisterRoutes(api, authMW)
	note.NewHandler(note.NewService(db)).RegisterRoutes(api, authMW)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api, authMW)
	timer.NewHandler(timerSvc).RegisterRoutes(api, authMW)
	reminder.NewHandler(reminder.NewService(db)).RegisterRoutes(api, authMW)
	upload.NewHandler(upload.NewService(a.store)).RegisterRoutes(api, authMW)
	overview.NewHandler(overview.NewService(db, timerSvc)).RegisterRoutes(api, authMW)
	var cache health.Pinger
	if a.redis != nil {
		cache = a.redis
	}
	health.RegisterRoutes(api, db, cache, a.sched, authMW)
}

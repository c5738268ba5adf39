package app

import (
	"context"
	"fmt"
	"time"

	pkgcron "github.com/studydesk/core/internal/pkg/cron"
	sessionpkg "github.com/studydesk/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionRetention = 7 * 24 * time.Hour

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "purge_sessions",
		Description: "Delete sessions that expired or were revoked over a week ago",
		Interval:    6 * time.Hour,
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			n, err := sessionpkg.Purge(db.WithContext(ctx), time.Now().Add(-sessionRetention))
			if err != nil {
				cronLogger.Warn("purge sessions failed", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("purged %d sessions", n))
			return nil
		},
	})
}

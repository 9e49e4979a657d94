package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/job-board/internal/core/events"
	"github.com/frahmantamala/job-board/internal/job"
	jobpg "github.com/frahmantamala/job-board/internal/job/postgres"
	"github.com/frahmantamala/job-board/pkg/logger"
)

// sweepCmd runs one lifecycle sweep and exits, for cron setups that want
// expiry handled outside the request path.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Deactivate postings whose deadline has passed",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		appLogger := logger.LoggerWrapper()

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		gormDB, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		bus := events.NewEventBus(appLogger)
		events.AuditSubscriber(bus)

		svc := job.NewService(jobpg.NewJobRepository(gormDB), bus, appLogger)
		count := svc.SweepExpired(context.Background())
		fmt.Printf("expired %d posting(s)\n", count)
	},
}

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/hr-leave-management/internal/core/events"
	employeePostgres "github.com/frahmantamala/hr-leave-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-leave-management/internal/leave/postgres"
	leavetypePostgres "github.com/frahmantamala/hr-leave-management/internal/leavetype/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/notification"
	"github.com/frahmantamala/hr-leave-management/internal/translog"
	translogPostgres "github.com/frahmantamala/hr-leave-management/internal/translog/postgres"
	"github.com/frahmantamala/hr-leave-management/pkg/logger"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark started leaves as consumed",
	Long:  `Transition approved and self approved leave requests whose starting date has passed into the consumed state. Intended to run daily from a scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"), cfg.Observability.Logging.Level)
		lg := logger.LoggerWrapper()

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		leaveRepo := leavePostgres.NewRepository(db)
		empRepo := employeePostgres.NewRepository(db)
		typeRepo := leavetypePostgres.NewRepository(db)
		translogService := translog.NewService(translogPostgres.NewRepository(db), lg)

		eventBus := events.NewEventBus(lg)
		if cfg.Notification.Enabled {
			notifier := notification.NewNotifier(notification.Config{
				Enabled:      cfg.Notification.Enabled,
				WebhookURL:   cfg.Notification.WebhookURL,
				APIKey:       cfg.Notification.APIKey,
				SendTimeout:  cfg.Notification.SendTimeout,
				MaxWorkers:   cfg.Notification.MaxWorkers,
				JobQueueSize: cfg.Notification.JobQueueSize,
			}, lg)
			notifier.RegisterSubscriptions(eventBus)
			defer notifier.Shutdown()
		}

		service := leave.NewService(leaveRepo, empRepo, typeRepo, eventBus, translogService, leave.SystemClock{}, lg)

		affected, err := service.SweepConsumption(time.Now())
		if err != nil {
			log.Fatalf("failed to sweep consumed leaves: %v", err)
		}

		fmt.Printf("Marked %d leave requests as consumed\n", affected)
	},
}

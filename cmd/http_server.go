package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-leave-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/core/events"
	"github.com/frahmantamala/hr-leave-management/internal/department"
	departmentPostgres "github.com/frahmantamala/hr-leave-management/internal/department/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-leave-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-leave-management/internal/leave/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
	leavetypePostgres "github.com/frahmantamala/hr-leave-management/internal/leavetype/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/notification"
	"github.com/frahmantamala/hr-leave-management/internal/translog"
	translogPostgres "github.com/frahmantamala/hr-leave-management/internal/translog/postgres"
	"github.com/frahmantamala/hr-leave-management/internal/transport"
	"github.com/frahmantamala/hr-leave-management/internal/transport/rest"
	"github.com/frahmantamala/hr-leave-management/internal/user"
	userPostgres "github.com/frahmantamala/hr-leave-management/internal/user/postgres"
	"github.com/frahmantamala/hr-leave-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Notifier *notification.Notifier
	Logger   *slog.Logger
}

// departmentChecker adapts the department repository to the employee
// service's existence check, avoiding a construction cycle between the
// two services.
type departmentChecker struct {
	repo *departmentPostgres.DepartmentRepository
}

func (c departmentChecker) Exists(departmentID int64) (bool, error) {
	dept, err := c.repo.GetByID(departmentID)
	if err != nil {
		return false, err
	}
	return dept != nil, nil
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.Notifier != nil {
			deps.Notifier.Shutdown()
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// repositories
	authRepo := authPostgres.NewRepository(gdb)
	userRepo := userPostgres.NewUserRepository(gdb)
	deptRepo := departmentPostgres.NewRepository(gdb)
	empRepo := employeePostgres.NewRepository(gdb)
	typeRepo := leavetypePostgres.NewRepository(gdb)
	leaveRepo := leavePostgres.NewRepository(gdb)
	translogRepo := translogPostgres.NewRepository(gdb)

	// services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	userService := user.NewService(userRepo, config.Security.BCryptCost)
	translogService := translog.NewService(translogRepo, lg)
	employeeService := employee.NewService(empRepo, userService, departmentChecker{repo: deptRepo}, translogService, lg)
	departmentService := department.NewService(deptRepo, employeeService, lg)
	leaveTypeService := leavetype.NewService(typeRepo, lg)

	eventBus := events.NewEventBus(lg)
	leaveService := leave.NewService(leaveRepo, empRepo, typeRepo, eventBus, translogService, leave.SystemClock{}, lg)

	var notifier *notification.Notifier
	if config.Notification.Enabled {
		notifier = notification.NewNotifier(notification.Config{
			Enabled:      config.Notification.Enabled,
			WebhookURL:   config.Notification.WebhookURL,
			APIKey:       config.Notification.APIKey,
			SendTimeout:  config.Notification.SendTimeout,
			MaxWorkers:   config.Notification.MaxWorkers,
			JobQueueSize: config.Notification.JobQueueSize,
		}, lg)
		notifier.RegisterSubscriptions(eventBus)
	}

	// handlers
	baseHandler := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Employee:   employee.NewHandler(baseHandler, employeeService),
		Department: department.NewHandler(baseHandler, departmentService),
		LeaveType:  leavetype.NewHandler(baseHandler, leaveTypeService),
		Leave:      leave.NewHandler(baseHandler, leaveService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Notifier: notifier,
		Logger:   lg,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

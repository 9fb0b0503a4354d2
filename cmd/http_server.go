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

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/auth"
	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
	employeePostgres "github.com/frahmantamala/permit-management/internal/employee/postgres"
	"github.com/frahmantamala/permit-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/permit-management/internal/notification/postgres"
	"github.com/frahmantamala/permit-management/internal/permit"
	permitPostgres "github.com/frahmantamala/permit-management/internal/permit/postgres"
	"github.com/frahmantamala/permit-management/internal/transport/rest"
	"github.com/frahmantamala/permit-management/internal/user"
	userPostgres "github.com/frahmantamala/permit-management/internal/user/postgres"
	"github.com/frahmantamala/permit-management/pkg/logger"

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
	Config              *internal.Config
	DB                  *sqlx.DB
	GormDB              *gorm.DB
	Router              *chi.Mux
	Logger              *slog.Logger
	AuthHandler         *auth.Handler
	UserHandler         *user.Handler
	EmployeeHandler     *employee.Handler
	PermitHandler       *permit.Handler
	NotificationHandler *notification.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.EmployeeHandler,
		deps.PermitHandler,
		deps.NotificationHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	userRepo := userPostgres.NewUserRepository(gormDB)
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	permitRepo := permitPostgres.NewPermitRequestRepository(gormDB)
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)

	userService := user.NewService(userRepo, appLogger)
	employeeService := employee.NewService(employeeRepo, appLogger)
	permitService := permit.NewService(permitRepo, employeeService, eventBus, appLogger)
	notificationService := notification.NewService(notificationRepo, userService, appLogger)

	notificationEvents := notification.NewEventHandler(notificationService, appLogger)
	notificationEvents.RegisterEventHandlers(eventBus)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userRepo, tokenGenerator)

	return &Dependencies{
		Config:              config,
		Logger:              appLogger,
		DB:                  db,
		GormDB:              gormDB,
		Router:              chi.NewRouter(),
		AuthHandler:         auth.NewHandler(authService),
		UserHandler:         user.NewHandler(userService),
		EmployeeHandler:     employee.NewHandler(employeeService),
		PermitHandler:       permit.NewHandler(permitService),
		NotificationHandler: notification.NewHandler(notificationService),
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open connection pool so the
// health check and the repositories share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}

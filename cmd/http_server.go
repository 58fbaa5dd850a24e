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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/atividade"
	atividadePostgres "github.com/Jesus-jpg1/GECC-System/internal/atividade/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	authPostgres "github.com/Jesus-jpg1/GECC-System/internal/auth/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/edital"
	editalPostgres "github.com/Jesus-jpg1/GECC-System/internal/edital/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/lancamento"
	lancamentoPostgres "github.com/Jesus-jpg1/GECC-System/internal/lancamento/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/notificacao"
	notificacaoPostgres "github.com/Jesus-jpg1/GECC-System/internal/notificacao/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/servidor"
	servidorPostgres "github.com/Jesus-jpg1/GECC-System/internal/servidor/postgres"
	"github.com/Jesus-jpg1/GECC-System/internal/transport/rest"
	"github.com/Jesus-jpg1/GECC-System/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	eventBus := events.NewEventBus(deps.Logger)

	authRepo := authPostgres.NewRepository(deps.Gorm)
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen)
	authHandler := auth.NewHandler(authService)

	servidorRepo := servidorPostgres.NewServidorRepository(deps.Gorm)
	servidorService := servidor.NewService(servidorRepo, cfg.Security.BCryptCost, deps.Logger)
	servidorHandler := servidor.NewHandler(servidorService)

	editalRepo := editalPostgres.NewEditalRepository(deps.Gorm)
	editalService := edital.NewService(editalRepo, eventBus, deps.Logger)
	editalHandler := edital.NewHandler(editalService)

	atividadeRepo := atividadePostgres.NewAtividadeRepository(deps.Gorm)
	atividadeService := atividade.NewService(atividadeRepo, editalService, deps.Logger)
	atividadeHandler := atividade.NewHandler(atividadeService)

	lancamentoRepo := lancamentoPostgres.NewLancamentoRepository(deps.Gorm)
	lancamentoService := lancamento.NewService(lancamentoRepo, editalService, atividadeService, eventBus, deps.Logger)
	lancamentoHandler := lancamento.NewHandler(lancamentoService)

	notificacaoRepo := notificacaoPostgres.NewNotificacaoRepository(deps.Gorm)
	notificacaoService := notificacao.NewService(notificacaoRepo, deps.Logger)
	notificacaoHandler := notificacao.NewHandler(notificacaoService)
	notificacao.NewEventHandler(notificacaoService, deps.Logger).RegisterHandlers(eventBus)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		authHandler,
		servidorHandler,
		editalHandler,
		atividadeHandler,
		lancamentoHandler,
		notificacaoHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx connection pool shared by sqlx and gorm.
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

package main

import (
	"context"
	"fmt"
	"interview-experience-backend/config"
	_ "interview-experience-backend/docs" // Important for Swagger
	v1 "interview-experience-backend/internal/delivery/http/v1"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/internal/repository/mongodb"
	"interview-experience-backend/internal/repository/postgres"
	"interview-experience-backend/internal/usecase"
	"interview-experience-backend/pkg/auth"
	"interview-experience-backend/pkg/database"
	"interview-experience-backend/pkg/logger"
	"interview-experience-backend/pkg/security"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// store bundles the repositories of whichever database DATABASE_URL points at.
type store struct {
	users       domain.UserRepository
	submissions domain.SubmissionRepository
	pinger      usecase.Pinger
	close       func()
}

// @title           Interview Experience API
// @version         1.0
// @description     Share and search interview experiences. Accounts, bearer tokens and owner-scoped submissions.
// @host            localhost:5000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting interview experience backend", "port", cfg.Port)

	environment := "development"
	if cfg.GinMode == gin.ReleaseMode {
		environment = "production"
	}
	audit := security.InitSecurityLogger("interview-experience-backend", environment)
	defer func() { _ = audit.Sync() }()

	// 3. Setup Database
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer st.close()

	// 4. Setup UseCases
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	authUC := usecase.NewAuthUsecase(st.users, hasher, tokens)
	submissionUC := usecase.NewSubmissionUsecase(st.submissions)
	healthUC := usecase.NewHealthUsecase(st.pinger)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		SubmissionUC:   submissionUC,
		HealthUC:       healthUC,
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		Audit:          audit,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Log.Info("Connected to PostgreSQL")
		return &store{
			users:       postgres.NewUserRepository(pool),
			submissions: postgres.NewSubmissionRepository(pool),
			pinger:      pool,
			close:       pool.Close,
		}, nil

	case config.DriverMongo:
		conn, err := database.NewMongoConnection(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, conn.DB); err != nil {
			_ = conn.Close(context.Background())
			return nil, err
		}
		logger.Log.Info("Connected to MongoDB", "database", conn.DB.Name())
		return &store{
			users:       mongodb.NewUserRepository(conn.DB),
			submissions: mongodb.NewSubmissionRepository(conn.DB),
			pinger:      conn,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := conn.Close(closeCtx); err != nil {
					logger.Log.Error("Failed to disconnect from MongoDB", "error", err)
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", driver)
}

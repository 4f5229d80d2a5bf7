package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/crypto/bcrypt"

	api "github.com/halcyonworks/mission-control/api/echo"
	"github.com/halcyonworks/mission-control/cache"
	rediscache "github.com/halcyonworks/mission-control/cache/redis"
	"github.com/halcyonworks/mission-control/config"
	"github.com/halcyonworks/mission-control/internal/auth"
	"github.com/halcyonworks/mission-control/internal/genai"
	"github.com/halcyonworks/mission-control/internal/identity"
	"github.com/halcyonworks/mission-control/internal/ratelimit"
	"github.com/halcyonworks/mission-control/internal/scrape"
	"github.com/halcyonworks/mission-control/internal/server"
	"github.com/halcyonworks/mission-control/log"
	"github.com/halcyonworks/mission-control/mongodb"
	"github.com/halcyonworks/mission-control/services"
	"github.com/halcyonworks/mission-control/tracing"
)

var (
	appLogger      log.Logger
	httpServer     *http.Server
	tracerProvider *sdktrace.TracerProvider
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
		bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		bootLogger.Warn().
			Str("configured_log_level", cfg.LogLevel).
			Err(parseErr).
			Msg("Invalid LOG_LEVEL configured, defaulting to 'info'")
	}
	appLogger = log.NewZerologAdapter(logLevel, cfg.LogPretty)
	appLogger.Info(context.Background(), "Starting mission-control server...", map[string]interface{}{
		"http_port":     cfg.HTTPPort,
		"mongo_db_name": cfg.MongoDBName,
		"log_level":     cfg.LogLevel,
		"app_env":       cfg.AppEnv,
		"otel_service":  cfg.OtelServiceName,
	})

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(context.Background(), "Failed to initialize TracerProvider", err, nil)
	}
	tracerProvider = tp

	ctx := context.Background()
	if initErr := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); initErr != nil {
		appLogger.Fatal(ctx, "Failed to initialize MongoDB connection", initErr, nil)
	}
	db := mongodb.GetDB()

	// Repositories.
	companyRepo, err := mongodb.NewCompanyRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize CompanyRepository", err, nil)
	}
	taskRepo, err := mongodb.NewTaskRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TaskRepository", err, nil)
	}
	auditRepo, err := mongodb.NewAuditRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize AuditRepository", err, nil)
	}
	proposalRepo, err := mongodb.NewProposalRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize ProposalRepository", err, nil)
	}
	leadRepo, err := mongodb.NewLeadRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize LeadRepository", err, nil)
	}
	profileRepo, err := mongodb.NewProfileRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize ProfileRepository", err, nil)
	}
	portalRepo, err := mongodb.NewPortalLinkRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize PortalLinkRepository", err, nil)
	}

	// Session verification cache: redis when configured, in-process
	// ttlcache otherwise.
	var sessions cache.SessionCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLogger.Fatal(ctx, "Failed to connect to redis", err, nil)
		}
		sessions = rediscache.NewSessionCache(rdb, "mc")
		appLogger.Info(ctx, "Using redis session cache", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		sessions = cache.NewMemorySessionCache(5 * time.Minute)
		appLogger.Info(ctx, "Using in-memory session cache")
	}

	// Services.
	passwordHasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost)
	scraper := scrape.New(time.Duration(cfg.ScrapeTimeoutSeconds) * time.Second)
	generator := genai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	idp := identity.NewClient(cfg.AuthURL, cfg.AuthAnonKey)

	companySvc := services.NewCompanyService(companyRepo)
	taskSvc := services.NewTaskService(taskRepo, companyRepo)
	leadSvc := services.NewLeadService(leadRepo)
	auditSvc := services.NewAuditService(auditRepo, companyRepo, scraper, generator)
	proposalSvc := services.NewProposalService(proposalRepo, companyRepo, auditRepo, generator)
	portalSvc := services.NewPortalService(portalRepo, companyRepo, auditRepo, proposalRepo, passwordHasher)
	profileSvc := services.NewProfileService(profileRepo)

	apiSurface := api.NewAPI(
		companySvc, taskSvc, leadSvc, auditSvc, proposalSvc, portalSvc, profileSvc,
		idp, sessions, ratelimit.NewStore(), cfg, appLogger,
	)

	httpServer = server.NewHTTPServer(cfg, appLogger, apiSurface)
	go func() {
		appLogger.Info(context.Background(), fmt.Sprintf("HTTP server listening on port %s", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(context.Background(), "Failed to start HTTP server", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	appLogger.Info(context.Background(), fmt.Sprintf("Received signal: %v. Shutting down server...", receivedSignal))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown error", err, nil)
	}

	if err := sessions.Close(); err != nil {
		appLogger.Error(shutdownCtx, "Session cache shutdown error", err, nil)
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "TracerProvider shutdown error", err, nil)
		}
	}

	mongodb.CloseMongoDB(shutdownCtx)

	appLogger.Info(shutdownCtx, "Server gracefully stopped.")
}

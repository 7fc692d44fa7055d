package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/skillswap/backend/internal/handlers"
	"github.com/skillswap/backend/internal/jwt"
	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/middlewares"
	"github.com/skillswap/backend/internal/repositories"
	"github.com/skillswap/backend/internal/services"
	"github.com/skillswap/backend/internal/validation"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds all environment-driven settings. Missing JWT secrets are a
// startup-fatal misconfiguration, never a per-request error.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	databaseURL    string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisAddr     string
	redisDB       int
	redisPassword string

	kafkaAddr  string
	kafkaTopic string

	jwtSecret        string
	jwtRefreshSecret string
	jwtExpSecond     int
	jwtRefreshExpSec int

	bcryptCost     int
	searchCacheTTL time.Duration
}

// @title SkillSwap API
// @version 1.0.0
// @description Peer-to-peer skill-exchange platform: accounts, discovery, swaps, credits, and a social feed
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, and JWT configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	cfg := &config{}
	var err error

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.databaseURL = getEnv("DATABASE_URL", fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "skillswap"),
	))
	if cfg.pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return nil, err
	}
	if cfg.pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return nil, err
	}

	// Redis config
	cfg.redisAddr = fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379"))
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, err
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config
	cfg.kafkaAddr = getEnv("KAFKA_ADDR", "")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "skillswap.swaps")

	// JWT config: both secrets are mandatory and must differ per class.
	cfg.jwtSecret = getEnv("JWT_SECRET", "")
	cfg.jwtRefreshSecret = getEnv("JWT_REFRESH_SECRET", "")
	if cfg.jwtSecret == "" || cfg.jwtRefreshSecret == "" {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXPIRE_SECOND", "900")); err != nil {
		return nil, err
	}
	if cfg.jwtRefreshExpSec, err = strconv.Atoi(getEnv("JWT_REFRESH_EXPIRE_SECOND", "604800")); err != nil {
		return nil, err
	}

	// Hashing and caching
	if cfg.bcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "12")); err != nil {
		return nil, err
	}
	searchTTL, err := strconv.Atoi(getEnv("SEARCH_CACHE_TTL_SECOND", "60"))
	if err != nil {
		return nil, err
	}
	cfg.searchCacheTTL = time.Duration(searchTTL) * time.Second

	return cfg, nil
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.databaseURL)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for swap settlement events. Optional: without KAFKA_ADDR
	// events are skipped.
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaAddr != "" {
		kw := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaAddr),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer kw.Close()
		kafkaWriter = kw
	}

	// Initialize token issuer and validator
	tokens := jwt.New(
		cfg.jwtSecret, cfg.jwtRefreshSecret,
		time.Duration(cfg.jwtExpSecond)*time.Second,
		time.Duration(cfg.jwtRefreshExpSec)*time.Second,
	)
	validator := validation.New()

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	skillReadRepo := repositories.NewSkillReadRepository(db)
	skillWriteRepo := repositories.NewSkillWriteRepository(db)
	swapReadRepo := repositories.NewSwapReadRepository(db)
	swapWriteRepo := repositories.NewSwapWriteRepository(db)
	ratingRepo := repositories.NewRatingWriteRepository(db)
	creditRepo := repositories.NewCreditReadRepository(db)
	postReadRepo := repositories.NewPostReadRepository(db)
	postWriteRepo := repositories.NewPostWriteRepository(db)
	followRepo := repositories.NewFollowWriteRepository(db)
	searchCache := repositories.NewSearchCacheRepository(rdb, cfg.searchCacheTTL)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, cfg.bcryptCost)
	profileService := services.NewProfileService(userReadRepo, skillReadRepo, userWriteRepo)
	skillService := services.NewSkillService(skillReadRepo, skillWriteRepo)
	discoveryService := services.NewDiscoveryService(skillReadRepo, searchCache)
	swapService := services.NewSwapService(swapReadRepo, swapWriteRepo, ratingRepo, userReadRepo, kafkaWriter)
	creditService := services.NewCreditService(creditRepo)
	socialService := services.NewSocialService(postReadRepo, postWriteRepo, followRepo, userReadRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Post("/api/auth/register", handlers.NewRegisterHandler(validator, authService))
	r.Post("/api/auth/login", handlers.NewLoginHandler(authService))
	r.Post("/api/auth/refresh", handlers.NewRefreshHandler(authService))

	// Protected routes with JWT middleware
	authMiddleware := middlewares.AuthMiddleware(tokens)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/users/me", handlers.NewGetMeHandler(profileService))
		r.Put("/api/users/me", handlers.NewUpdateMeHandler(validator, profileService))
		r.Get("/api/users/{id}", handlers.NewGetUserHandler(profileService))
		r.Get("/api/users/{id}/skills", handlers.NewListSkillsHandler(skillService))
		r.Post("/api/users/{id}/follow", handlers.NewFollowHandler(socialService))
		r.Delete("/api/users/{id}/follow", handlers.NewUnfollowHandler(socialService))

		r.Post("/api/skills", handlers.NewAddSkillHandler(skillService))
		r.Delete("/api/skills/{id}", handlers.NewRemoveSkillHandler(skillService))
		r.Get("/api/discovery/search", handlers.NewSearchHandler(discoveryService))

		r.Post("/api/swaps", handlers.NewCreateSwapHandler(swapService))
		r.Get("/api/swaps", handlers.NewListSwapsHandler(swapService))
		r.Post("/api/swaps/{id}/accept", handlers.NewSwapActionHandler(swapService.Accept, "Swap accepted"))
		r.Post("/api/swaps/{id}/reject", handlers.NewSwapActionHandler(swapService.Reject, "Swap rejected"))
		r.Post("/api/swaps/{id}/complete", handlers.NewSwapActionHandler(swapService.Complete, "Swap completed"))
		r.Post("/api/swaps/{id}/rating", handlers.NewRateSwapHandler(swapService))
		r.Get("/api/credits/balance", handlers.NewGetBalanceHandler(creditService))

		r.Post("/api/posts", handlers.NewCreatePostHandler(socialService))
		r.Get("/api/feed", handlers.NewFeedHandler(socialService))
		r.Post("/api/posts/{id}/like", handlers.NewLikeHandler(socialService))
		r.Delete("/api/posts/{id}/like", handlers.NewUnlikeHandler(socialService))
		r.Post("/api/posts/{id}/comments", handlers.NewCommentHandler(socialService))
		r.Get("/api/posts/{id}/comments", handlers.NewListCommentsHandler(socialService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

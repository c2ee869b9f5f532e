package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/adapters/cache"
	"github.com/servineo/backend/internal/adapters/database"
	"github.com/servineo/backend/internal/adapters/events"
	"github.com/servineo/backend/internal/adapters/providers/calendar"
	"github.com/servineo/backend/internal/adapters/search"
	"github.com/servineo/backend/internal/api/handlers"
	"github.com/servineo/backend/internal/api/routes"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	"github.com/servineo/backend/internal/infrastructure/clients/redis"
	"github.com/servineo/backend/internal/infrastructure/clients/typesense"
	"github.com/servineo/backend/internal/infrastructure/notifications"
	"github.com/servineo/backend/internal/infrastructure/observability"
	"github.com/servineo/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client; the application degrades to uncached reads
	// and no event bus without it
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client; fixer search is disabled without it
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, fixer search disabled")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	}

	// Initialize adapters
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	notificationLogAdapter := database.NewNotificationLogAdapter(pgClient)

	var userAdapter repositories.UserRepository = database.NewUserAdapter(pgClient)
	if cacheProvider != nil {
		userAdapter = database.NewCachedUserAdapter(userAdapter, cacheProvider)
		log.Info().Msg("user adapter wrapped with caching layer")
	}

	var searchProvider providers.FixerSearchProvider
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := typesenseClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchProvider = adapter
	}

	calendarProvider := calendar.NewCalendarProvider(ctx, &cfg.Calendar)

	// Initialize notification channels; missing mail credentials are fatal
	emailSender, err := notifications.NewEmailSender(&cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email sender")
	}
	whatsappSender, err := notifications.NewWhatsAppSender(&cfg.WhatsApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize WhatsApp sender")
	}

	// Initialize services
	notificationService := services.NewNotificationService(emailSender, whatsappSender, notificationLogAdapter, metrics)
	rescheduleNotifier := services.NewRescheduleNotifier(userAdapter, notificationService)
	cancellationNotifier := services.NewCancellationNotifier(userAdapter, notificationService)

	updateService := services.NewAppointmentUpdateService(
		appointmentAdapter,
		userAdapter,
		calendarProvider,
		rescheduleNotifier,
		cancellationNotifier,
		eventBus,
		metrics,
	)

	var fixerSearchService *services.FixerSearchService
	if searchProvider != nil {
		fixerSearchService = services.NewFixerSearchService(userAdapter, searchProvider)
	}

	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(updateService)
	userHandler := handlers.NewUserHandler(userAdapter, updateService)

	var fixerSearchHandler *handlers.FixerSearchHandler
	if fixerSearchService != nil {
		fixerSearchHandler = handlers.NewFixerSearchHandler(fixerSearchService)
	}

	var trackingHandler *handlers.TrackingHandler
	if eventBus != nil {
		trackingHandler = handlers.NewTrackingHandler(eventBus)
	}

	// Set up router
	router := routes.NewRouter(appointmentHandler, userHandler, fixerSearchHandler, trackingHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/delivery/http/controllers"
	"medportal-service/internal/app/delivery/http/middlewares"
	"medportal-service/internal/app/delivery/http/routers"
	"medportal-service/internal/app/drivers/database"
	"medportal-service/internal/app/drivers/logger"
	"medportal-service/internal/app/drivers/messaging"
	"medportal-service/internal/app/drivers/storage"
	"medportal-service/internal/app/services/backend"
	"medportal-service/internal/app/services/core/auth"
	"medportal-service/internal/app/services/core/feed"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/app/services/core/registration"
	"medportal-service/internal/app/services/core/session"
	"medportal-service/internal/app/services/shared/events"
	"medportal-service/internal/app/services/shared/ratelimiter"
	"medportal-service/internal/app/services/shared/redis"
	"medportal-service/internal/app/services/shared/sessionstore"
	sharedStorage "medportal-service/internal/app/services/shared/storage"
	"medportal-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Minio:          storage.NewMinio(driverConfig),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	switch internalConfig.Session.StoreDriver {
	case constvars.SessionStoreDriverRedis:
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	case constvars.SessionStoreDriverSQLite:
		bootstrap.SQLite = database.NewSQLite(driverConfig)
	case constvars.SessionStoreDriverMemory:
	default:
		log.Fatal("Unknown session store driver", zap.String("driver", internalConfig.Session.StoreDriver))
	}

	if internalConfig.Session.EventsEnabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	storage.EnsureBucket(startupCtx, bootstrap.Minio, internalConfig.Minio.BucketName)
	err := bootstrapingTheApp(startupCtx, bootstrap)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger
	sessionTTL := time.Duration(internalConfig.Session.TTLInHours) * time.Hour

	// Session store
	var sessionStore contracts.SessionStore
	var forgotPasswordLimiter contracts.RateLimiter
	switch {
	case bootstrap.Redis != nil:
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		sessionStore = sessionstore.NewRedisSessionStore(redisRepository, sessionTTL)
		forgotPasswordLimiter = ratelimiter.NewFixedWindowLimiter(
			redisRepository,
			log,
			time.Duration(internalConfig.App.ForgotPasswordWindowInMinute)*time.Minute,
			internalConfig.App.ForgotPasswordQuota,
		)
	case bootstrap.SQLite != nil:
		var err error
		sessionStore, err = sessionstore.NewSQLiteSessionStore(ctx, bootstrap.SQLite, sessionTTL)
		if err != nil {
			return err
		}
	default:
		log.Warn("Sessions are kept in memory and will not survive a restart")
		sessionStore = sessionstore.NewMemorySessionStore(sessionTTL)
	}

	// Session events
	eventPublisher := events.NewNoopSessionEventPublisher()
	if bootstrap.RabbitMQ != nil {
		amqpPublisher, err := events.NewAMQPSessionEventPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.SessionEventsQueue, log)
		if err != nil {
			return err
		}
		eventPublisher = amqpPublisher
	}

	// Session contexts
	sessionRegistry := session.NewRegistry(sessionStore, log, time.Duration(internalConfig.Session.ContextIdleTTLInMinutes)*time.Minute)
	janitorInterval := time.Duration(internalConfig.Session.ContextJanitorIntervalInSec) * time.Second
	stopSessionJanitor := sessionRegistry.StartJanitor(janitorInterval)

	// Backend
	backendTimeout := time.Duration(internalConfig.Backend.RequestTimeoutSeconds) * time.Second
	restyClient := backend.NewRestyClient(internalConfig.Backend.BaseUrl, backendTimeout)
	authClient := backend.NewAuthClient(restyClient, log)
	feedClient := backend.NewFeedClient(restyClient, log)

	// Storage
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)

	// Usecases
	authUsecase := auth.NewAuthUsecase(authClient, eventPublisher, forgotPasswordLimiter, log)
	wizardRegistry := registration.NewWizardRegistry(minioStorage, internalConfig, log)
	stopWizardJanitor := wizardRegistry.StartJanitor(janitorInterval)
	registrationUsecase := registration.NewRegistrationUsecase(wizardRegistry, authClient, minioStorage, internalConfig, log)
	feedUsecase := feed.NewFeedUsecase(feedClient, log)

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(log, internalConfig, sessionRegistry, guards.DefaultRouteTable())
	loginLimiter := middlewares.NewRateLimiter(
		internalConfig.App.LoginRateLimitPerMinute,
		time.Minute,
		internalConfig.App.LoginRateLimitBurst,
		time.Duration(internalConfig.App.LoginRateLimitBlockInMinutes)*time.Minute,
		log,
	)
	stopLoginLimiterJanitor := loginLimiter.StartJanitor(time.Minute)

	bootstrap.WorkerStop = func() {
		stopSessionJanitor()
		stopWizardJanitor()
		stopLoginLimiterJanitor()
	}

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewareInstance, loginLimiter, routers.Controllers{
		Auth:         controllers.NewAuthController(log, authUsecase, internalConfig.Backend.RequestTimeoutSeconds),
		Registration: controllers.NewRegistrationController(log, registrationUsecase, internalConfig),
		Feed:         controllers.NewFeedController(log, feedUsecase, internalConfig.Backend.RequestTimeoutSeconds),
		Page:         controllers.NewPageController(log),
	})
	return nil
}

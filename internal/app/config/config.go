package config

import (
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		SQLite: SQLite{
			Path: utils.GetEnvString("SQLITE_PATH", "medportal_sessions.db"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                          utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                         utils.GetEnvString("APP_PORT", "8080"),
			Version:                      utils.GetEnvString("APP_VERSION", "v1"),
			Address:                      utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:               utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			CorsAllowedOrigins:           utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxRequests:                  utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:     utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:    utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:   utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginRateLimitPerMinute:      utils.GetEnvInt("APP_LOGIN_RATE_LIMIT_PER_MINUTE", 10),
			LoginRateLimitBurst:          utils.GetEnvInt("APP_LOGIN_RATE_LIMIT_BURST", 5),
			LoginRateLimitBlockInMinutes: utils.GetEnvInt("APP_LOGIN_RATE_LIMIT_BLOCK_IN_MINUTES", 5),
			ForgotPasswordQuota:          utils.GetEnvInt("APP_FORGOT_PASSWORD_QUOTA", 3),
			ForgotPasswordWindowInMinute: utils.GetEnvInt("APP_FORGOT_PASSWORD_WINDOW_IN_MINUTE", 60),
		},
		Backend: AppBackend{
			BaseUrl:               utils.GetEnvString("APP_BACKEND_BASE_URL", "http://localhost:5000"),
			RequestTimeoutSeconds: utils.GetEnvInt("APP_BACKEND_TIMEOUT_IN_SECONDS", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24*7),
		},
		Session: AppSession{
			StoreDriver:                 utils.GetEnvString("SESSION_STORE_DRIVER", constvars.SessionStoreDriverRedis),
			TTLInHours:                  utils.GetEnvInt("APP_SESSION_TTL_IN_HOURS", 24*7),
			ContextIdleTTLInMinutes:     utils.GetEnvInt("APP_SESSION_CONTEXT_IDLE_TTL_IN_MINUTES", 30),
			ContextJanitorIntervalInSec: utils.GetEnvInt("APP_SESSION_CONTEXT_JANITOR_INTERVAL_IN_SECONDS", 60),
			CookieSecure:                utils.GetEnvBool("APP_SESSION_COOKIE_SECURE", false),
			EventsEnabled:               utils.GetEnvBool("APP_SESSION_EVENTS_ENABLED", false),
		},
		Wizard: AppWizard{
			IdleTTLInMinutes: utils.GetEnvInt("APP_WIZARD_IDLE_TTL_IN_MINUTES", 60),
		},
		Minio: AppMinio{
			ProfilePictureMaxUploadSizeInMB: int64(utils.GetEnvInt("APP_MINIO_PROFILE_PICTURE_UPLOAD_MAX_SIZE_IN_MB", 2)),
			BucketName:                      utils.GetEnvString("APP_MINIO_BUCKET_NAME", "medportal"),
			StagingPrefix:                   utils.GetEnvString("APP_MINIO_STAGING_PREFIX", "registration-staging"),
		},
		RabbitMQ: AppRabbitMQ{
			SessionEventsQueue: utils.GetEnvString("APP_RABBITMQ_SESSION_EVENTS_QUEUE", "portal.session.events"),
		},
	}
}

package config

type InternalConfig struct {
	App      App
	Backend  AppBackend
	JWT      AppJWT
	Session  AppSession
	Wizard   AppWizard
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                          string
	Port                         string
	Version                      string
	Address                      string
	EndpointPrefix               string
	CorsAllowedOrigins           []string
	MaxRequests                  int
	ShutdownTimeoutInSeconds     int
	MaxTimeRequestsPerSeconds    int
	RequestBodyLimitInMegabyte   int
	LoginRateLimitPerMinute      int
	LoginRateLimitBurst          int
	LoginRateLimitBlockInMinutes int
	ForgotPasswordQuota          int
	ForgotPasswordWindowInMinute int
}

// AppBackend points at the backend REST API the portal authenticates against.
type AppBackend struct {
	BaseUrl               string
	RequestTimeoutSeconds int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppSession struct {
	StoreDriver                 string
	TTLInHours                  int
	ContextIdleTTLInMinutes     int
	ContextJanitorIntervalInSec int
	CookieSecure                bool
	EventsEnabled               bool
}

type AppWizard struct {
	IdleTTLInMinutes int
}

type AppMinio struct {
	ProfilePictureMaxUploadSizeInMB int64
	BucketName                      string
	StagingPrefix                   string
}

type AppRabbitMQ struct {
	SessionEventsQueue string
}

package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_BROWSER_SESSION_ID_KEY   ContextKey = "browser_session_id"
	CONTEXT_SESSION_CONTEXT_KEY      ContextKey = "session_context"
	CONTEXT_PAGE_ROUTE_KEY           ContextKey = "page_route"
)

const (
	REQUEST_ID_PREFIX = "MDPRTL_SVC_"
)

const (
	UserTypePatient      = "patient"
	UserTypeDoctor       = "doctor"
	UserTypeReceptionist = "receptionist"
)

const (
	SessionStoreDriverRedis  = "redis"
	SessionStoreDriverSQLite = "sqlite"
	SessionStoreDriverMemory = "memory"
)

const (
	ResourceAuth     = "auth"
	ResourceFeed     = "feed"
	ResourceRegister = "register"
	ResourceSession  = "session"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPageSize     = 10
)

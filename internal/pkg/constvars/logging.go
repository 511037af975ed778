package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingBrowserSessionIDKey = "browser_session_id"
	LoggingUserTypeKey         = "user_type"
	LoggingUserIDKey           = "user_id"
	LoggingEndpointKey         = "endpoint"
	LoggingMethodKey           = "method"
	LoggingStatusCodeKey       = "status_code"
	LoggingRemoteAddrKey       = "remote_addr"
	LoggingUserAgentKey        = "user_agent"
	LoggingQueryKey            = "query"
	LoggingDurationKey         = "duration"
	LoggingSuccessKey          = "success"
	LoggingSessionKeyKey       = "session_key"
	LoggingRedirectKey         = "redirect"
	LoggingPathKey             = "path"
	LoggingCapabilityKey       = "capability"
	LoggingWizardRoleKey       = "wizard_role"
	LoggingWizardStepKey       = "wizard_step"
	LoggingObjectNameKey       = "object_name"
	LoggingPostIDKey           = "post_id"
	LoggingEventTypeKey        = "event_type"
	LoggingQueueKey            = "queue"
)

package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email",
	"alphanum":  "must contain only alphanumeric characters",
	"min":       "must be at least %s characters long",
	"max":       "maximum at %s characters long",
	"eqfield":   "must match %s",
	"oneof":     "must be one of [%s]",
	"password":  "must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a digit and a special character",
	"username":  "must be 3-20 characters of letters, digits or underscore",
	"phone":     "must be a valid phone number",
	"date":      "must be a date in YYYY-MM-DD format",
	"user_type": "must be one of [doctor, patient, receptionist]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"eqfield": true,
	"oneof":   true,
}

// Error messages for clients
const (
	ErrClientPasswordsDoNotMatch           = "passwords do not match"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientInvalidImageFormat            = "the image you uploaded does not meet the specified standards"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientRegistrationFailed            = "registration failed, please try again"
	ErrClientWizardNotOnFinalStep          = "please complete every registration step first"
	ErrClientWizardCannotGoBack            = "you are already on the first registration step"
	ErrClientWizardSubmissionInProgress    = "your registration is being submitted"
	ErrClientWizardAlreadySubmitted        = "your registration was already submitted"
	ErrClientWizardNotOnPhotoStep          = "profile picture can only be uploaded on the photo step"
	ErrClientPageNotFound                  = "page not found"
	ErrClientTooManyRequests               = "too many attempts, please try again later"
	ErrClientBackendUnavailable            = "the service is unavailable right now, please try again"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevValidationFailed         = "validation failed"
	ErrDevImageValidationFailed    = "image validation failed"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"
	ErrDevInvalidUserType          = "invalid user type, should be 'doctor', 'patient' or 'receptionist'"
	ErrDevUnknownSessionKey        = "unknown session key %s"

	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthRefreshTokenMissing   = "refresh token missing from session"
	ErrDevAuthBackendRejected       = "backend rejected %s request with status %d"
	ErrDevAuthUnexpectedResponse    = "backend %s response is missing required fields"

	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request to %s"

	ErrDevWizardNotOnFinalStep       = "wizard submit requested before final step"
	ErrDevWizardCannotGoBack         = "wizard back requested on first step"
	ErrDevWizardSubmissionInProgress = "wizard submission already in flight"
	ErrDevWizardAlreadySubmitted     = "wizard already submitted"
	ErrDevWizardUnknownRole          = "no registration wizard for role %s"
	ErrDevWizardStepInvalid          = "wizard step %s has invalid fields"
	ErrDevWizardNotOnPhotoStep       = "wizard photo upload requested outside the photo step"
	ErrDevPageNotFound               = "no page registered for path %s"
	ErrDevStreamingUnsupported       = "response writer does not support flushing"

	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObject    = "failed to get object from minio storage with bucket name '%s'"
	ErrDevMinioFailedToRemoveObject = "failed to remove object from minio storage with bucket name '%s'"

	ErrDevRedisSetData     = "failed to SET data into redis"
	ErrDevRedisGetData     = "failed to GET data from redis"
	ErrDevRedisDeleteData  = "failed to DELETE data from redis"
	ErrDevRedisHashSet     = "failed to HSET data into redis"
	ErrDevRedisHashGetAll  = "failed to HGETALL data from redis"
	ErrDevRedisHashDelete  = "failed to HDEL data from redis"
	ErrDevRedisExpire      = "failed to EXPIRE key in redis"
	ErrDevSQLiteOperation  = "failed to %s session fields in sqlite"
	ErrDevRabbitMQPublish  = "failed to publish message into queue %s"
	ErrDevServerProcess    = "server failed to process something related to machine system"
	ErrDevServerDeadline   = "deadline exceeded"
	ErrDevRequestLimited   = "request limit exceeded"
	ErrDevUnknownRecovered = "unknown error"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)

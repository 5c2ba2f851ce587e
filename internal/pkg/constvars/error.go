package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientConsentNotFound               = "no consent on file for this patient, authorization is required"
	ErrClientConsentInvalid                = "consent is no longer valid, please re-authorize the patient"
	ErrClientConsentStateInvalid           = "authorization state could not be verified, please restart the flow"
	ErrClientConsentExchangeFailed         = "authorization could not be completed, please restart the flow"
	ErrClientConsentRotationBusy           = "another request is refreshing this consent, please retry"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON      = "cannot parse JSON"
	ErrDevCannotMarshalJSON    = "cannot marshal JSON"
	ErrDevValidationFailed     = "validation failed"
	ErrDevInvalidCredentials   = "invalid credentials"
	ErrDevFailedToHashPassword = "failed to hash password"
	ErrDevCreateHTTPRequest    = "failed to create HTTP request"
	ErrDevSendHTTPRequest      = "failed to send HTTP request"

	// Authentication / session messages
	ErrDevAuthSigningMethod  = "unexpected signing method"
	ErrDevAuthTokenInvalid   = "invalid token"
	ErrDevAuthTokenMissing   = "token missing"
	ErrDevAuthGenerateToken  = "failed to generate token"
	ErrDevAuthInvalidSession = "invalid session"
	ErrDevAuthNoClinicID     = "no authenticated clinic identity in context"

	// OAuth flow messages
	ErrDevOAuthStateMalformed    = "oauth state parameter is malformed"
	ErrDevOAuthNonceMismatch     = "oauth nonce does not match session-stored value"
	ErrDevOAuthCodeAlreadyUsed   = "authorization code has already been exchanged"
	ErrDevOAuthExchangeFailed    = "token endpoint rejected the authorization code exchange"
	ErrDevOAuthRefreshRejected   = "token endpoint rejected the refresh token"
	ErrDevOAuthMissingTokenData  = "token response is missing refresh_token or patient identifier"
	ErrDevOAuthRotationConflict  = "concurrent refresh token rotation detected"
	ErrDevOAuthGeneratePKCE      = "failed to generate PKCE pair"

	// Vault messages
	ErrDevVaultEncrypt         = "failed to encrypt secret"
	ErrDevVaultEnvelopeFormat  = "secret envelope cannot be parsed"
	ErrDevVaultIntegrityFailed = "secret envelope failed integrity verification"

	// Claims messages
	ErrDevEobUnexpectedResourceKind = "resource kind does not match the expected claim category"
	ErrDevEobDecodeResponse         = "failed to decode claims API response"
	ErrDevEobFetchFailed            = "claims API request failed"

	// Database messages
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument = "failed to update document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevDBStringNotObjectID      = "given ID is not valid object ID"

	// Redis messages
	ErrDevRedisGetData      = "failed to get data from redis"
	ErrDevRedisSetData      = "failed to set data into redis"
	ErrDevRedisDeleteData   = "failed to delete data from redis"
	ErrDevRedisStoreSession = "failed to store session data into redis"
	ErrDevRedisUnlock       = "failed to release redis lock"
	ErrDevRedisGetNoData    = "failed to get data from redis with key: %s"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerProcess          = "failed to process request"
)

const (
	ResponseUnknown = "unknown"
)

package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
	CONTEXT_CLINIC_ID_KEY            ContextKey = "clinic_id"
)

const (
	URLParamPatientID = "patient_id"
	URLParamCode      = "code"
)

const (
	URLQueryParamCode  = "code"
	URLQueryParamState = "state"
	URLQueryParamTypes = "types"
)

// Redis key prefixes. Session, OAuth state and used-code entries all live in
// redis so the single-use guarantees hold across instances.
const (
	RedisKeyClinicSession    = "session:clinic:"
	RedisKeyOAuthSession     = "oauth:session:"
	RedisKeyUsedAuthCode     = "oauth:used_code:"
	RedisKeyConsentRotateLock = "consent:rotate:"
	RedisKeyCodeDescription  = "code:icd10pcs:"
)

const (
	OAuthSessionTTLMinutes     = 5
	UsedAuthCodeTTLHours       = 24
	RotationLockTTLSeconds     = 30
	ClinicSessionTTLHours      = 24
	CodeDescriptionCacheTTLDays = 7
)

const (
	OAuthStateParamClinicID = "clinicId"
	OAuthStateParamNonce    = "nonce"
)

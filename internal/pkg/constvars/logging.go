package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingClinicIDKey   = "clinic_id"
	LoggingPatientIDKey  = "patient_id"
	LoggingConsentIDKey  = "consent_id"
	LoggingResourceIDKey = "resource_id"
	LoggingEobTypeKey    = "eob_type"
	LoggingEntryCountKey = "entry_count"
	LoggingClaimTypesKey = "claim_types"
	LoggingCodeKey       = "code"
	LoggingRedisKey      = "redis_key"

	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)

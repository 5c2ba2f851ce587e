package config

import (
	"claimbridge-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "claimbridge"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1.0"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			FrontendDomain:            utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:5173"),
			ShutdownTimeoutInSeconds:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestTimeoutInSeconds:   utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		BlueButton: BlueButton{
			ClientID:           utils.GetEnvString("BB_CLIENT_ID", ""),
			ClientSecret:       utils.GetEnvString("BB_CLIENT_SECRET", ""),
			AuthURL:            utils.GetEnvString("BB_AUTH_URL", "https://sandbox.bluebutton.cms.gov/v2/o/authorize/"),
			TokenURL:           utils.GetEnvString("BB_TOKEN_URL", "https://sandbox.bluebutton.cms.gov/v2/o/token/"),
			RedirectURI:        utils.GetEnvString("BB_REDIRECT_URI", "http://localhost:8080/api/v1/auth/callback"),
			APIBaseURL:         utils.GetEnvString("BB_API_BASE_URL", "https://sandbox.bluebutton.cms.gov/v2/fhir/"),
			CallbackSuccessURL: utils.GetEnvString("BB_CALLBACK_SUCCESS_URL", "http://localhost:5173/patients-list"),
			CallbackErrorURL:   utils.GetEnvString("BB_CALLBACK_ERROR_URL", "http://localhost:5173/patient-data?consent=error"),
		},
		Vault: Vault{
			EncryptionKeyHex: utils.GetEnvString("ENCRYPTION_KEY", ""),
		},
		CodeLookup: CodeLookup{
			BaseURL: utils.GetEnvString("CODE_LOOKUP_BASE_URL", "https://clinicaltables.nlm.nih.gov/api/icd10pcs/v3/search"),
		},
	}
}

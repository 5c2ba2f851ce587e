package config

type InternalConfig struct {
	App        App
	JWT        JWT
	BlueButton BlueButton
	Vault      Vault
	CodeLookup CodeLookup
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	EndpointPrefix            string
	FrontendDomain            string
	ShutdownTimeoutInSeconds  int
	MaxRequests               int
	MaxTimeRequestsPerSeconds int
	RequestTimeoutInSeconds   int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

// BlueButton holds the registered OAuth client and API endpoints for the
// CMS Blue Button 2.0 sandbox or production environment.
type BlueButton struct {
	ClientID           string
	ClientSecret       string
	AuthURL            string
	TokenURL           string
	RedirectURI        string
	APIBaseURL         string
	CallbackSuccessURL string
	CallbackErrorURL   string
}

type Vault struct {
	// EncryptionKeyHex is the hex encoding of the 32-byte AES key.
	EncryptionKeyHex string
}

type CodeLookup struct {
	BaseURL string
}

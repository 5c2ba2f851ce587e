package responses

type InitiateConsent struct {
	AuthorizationURL string `json:"authorizationUrl"`
}

type ConsentCallback struct {
	ClinicID          string `json:"clinicId"`
	InternalPatientID string `json:"internalPatientId"`
	ProviderPatientID string `json:"providerPatientId"`
	GrantedAt         string `json:"grantedAt"`
}

package requests

type InitiateConsentRequest struct {
	InternalPatientID string `json:"internalPatientId" validate:"required"`
}

// ConsentCallbackRequest carries the query parameters the authorization
// server appends to the redirect URI.
type ConsentCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

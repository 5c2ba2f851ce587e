package models

// OAuthSession is the transient state stored in Redis between the initiate
// and callback legs of the authorization flow, keyed by the state nonce.
type OAuthSession struct {
	Nonce             string `json:"nonce"`
	CodeVerifier      string `json:"code_verifier"`
	ClinicID          string `json:"clinic_id"`
	InternalPatientID string `json:"internal_patient_id"`
}

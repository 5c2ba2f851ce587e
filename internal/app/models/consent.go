package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consent links a clinic's patient record to an authorized Blue Button account.
// RefreshToken holds the encrypted envelope, never the raw token.
type Consent struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ClinicID          string             `bson:"clinic_id"`
	InternalPatientID string             `bson:"internal_patient_id"`
	ProviderPatientID string             `bson:"provider_patient_id"`
	RefreshToken      string             `bson:"refresh_token"`
	Scope             string             `bson:"scope"`
	GrantedAt         time.Time          `bson:"granted_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

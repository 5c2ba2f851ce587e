package contracts

import (
	"claimbridge-service/internal/app/models"
	"context"
)

type ConsentRepository interface {
	UpsertConsent(ctx context.Context, consent *models.Consent) (*models.Consent, error)
	FindByClinicAndPatient(ctx context.Context, clinicID, internalPatientID string) (*models.Consent, error)
	// UpdateRefreshTokenCAS swaps the stored envelope only if it still equals
	// expectedEnvelope. Returns false when another writer rotated first.
	UpdateRefreshTokenCAS(ctx context.Context, consentID, expectedEnvelope, newEnvelope string) (bool, error)
}

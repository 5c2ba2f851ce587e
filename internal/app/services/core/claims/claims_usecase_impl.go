package claims

import (
	"context"
	"sync"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/eob"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"

	"go.uber.org/zap"
)

type claimsUsecase struct {
	ConsentRepository  contracts.ConsentRepository
	AuthUsecase        contracts.AuthUsecase
	EobFhirClient      contracts.EobFhirClient
	CoverageFhirClient contracts.CoverageFhirClient
	Classifier         *eob.Classifier
	Log                *zap.Logger
}

var (
	claimsUsecaseInstance contracts.ClaimsUsecase
	onceClaimsUsecase     sync.Once
)

func NewClaimsUsecase(
	consentRepository contracts.ConsentRepository,
	authUsecase contracts.AuthUsecase,
	eobFhirClient contracts.EobFhirClient,
	coverageFhirClient contracts.CoverageFhirClient,
	logger *zap.Logger,
) contracts.ClaimsUsecase {
	onceClaimsUsecase.Do(func() {
		claimsUsecaseInstance = &claimsUsecase{
			ConsentRepository:  consentRepository,
			AuthUsecase:        authUsecase,
			EobFhirClient:      eobFhirClient,
			CoverageFhirClient: coverageFhirClient,
			Classifier:         eob.NewClassifier(logger),
			Log:                logger,
		}
	})
	return claimsUsecaseInstance
}

// GetPatientClaims fetches the patient's explanation of benefit bundle from
// the provider and flattens it into per-type claim buckets.
func (uc *claimsUsecase) GetPatientClaims(ctx context.Context, clinicID, internalPatientID string, claimTypes []string) (*eob.CategorizedClaims, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimsUsecase.GetPatientClaims called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingPatientIDKey, internalPatientID),
		zap.Strings(constvars.LoggingClaimTypesKey, claimTypes),
	)

	consent, err := uc.ConsentRepository.FindByClinicAndPatient(ctx, clinicID, internalPatientID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return nil, exceptions.ErrConsentNotFound(nil)
	}

	tokenData, err := uc.AuthUsecase.RotateRefreshToken(ctx, clinicID, internalPatientID)
	if err != nil {
		return nil, err
	}

	bundle, err := uc.EobFhirClient.SearchEob(ctx, tokenData.AccessToken, consent.ProviderPatientID, claimTypes)
	if err != nil {
		uc.Log.Error("claimsUsecase.GetPatientClaims error searching explanation of benefit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	categorized := uc.Classifier.Classify(bundle)
	uc.Log.Info("claimsUsecase.GetPatientClaims succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, categorized.TotalEntries()),
	)
	return categorized, nil
}

func (uc *claimsUsecase) GetPatientCoverage(ctx context.Context, clinicID, internalPatientID string) (*fhir_dto.Bundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimsUsecase.GetPatientCoverage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingPatientIDKey, internalPatientID),
	)

	consent, err := uc.ConsentRepository.FindByClinicAndPatient(ctx, clinicID, internalPatientID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return nil, exceptions.ErrConsentNotFound(nil)
	}

	tokenData, err := uc.AuthUsecase.RotateRefreshToken(ctx, clinicID, internalPatientID)
	if err != nil {
		return nil, err
	}

	bundle, err := uc.CoverageFhirClient.SearchCoverage(ctx, tokenData.AccessToken, consent.ProviderPatientID)
	if err != nil {
		uc.Log.Error("claimsUsecase.GetPatientCoverage error searching coverage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("claimsUsecase.GetPatientCoverage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return bundle, nil
}

package patients

import (
	"context"
	"sync"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/dto/responses"
	"claimbridge-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	ConsentRepository contracts.ConsentRepository
	AuthUsecase       contracts.AuthUsecase
	PatientFhirClient contracts.PatientFhirClient
	Log               *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	consentRepository contracts.ConsentRepository,
	authUsecase contracts.AuthUsecase,
	patientFhirClient contracts.PatientFhirClient,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = &patientUsecase{
			PatientRepository: patientRepository,
			ConsentRepository: consentRepository,
			AuthUsecase:       authUsecase,
			PatientFhirClient: patientFhirClient,
			Log:               logger,
		}
	})
	return patientUsecaseInstance
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, clinicID string, request *requests.CreatePatientRequest) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	now := time.Now().UTC()
	patient, err := uc.PatientRepository.CreatePatient(ctx, &models.Patient{
		ClinicID:  clinicID,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID.Hex()),
	)
	return &responses.Patient{
		PatientID: patient.ID.Hex(),
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Email:     patient.Email,
	}, nil
}

func (uc *patientUsecase) GetPatients(ctx context.Context, clinicID string) ([]responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	patients, err := uc.PatientRepository.FindPatientsByClinic(ctx, clinicID)
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatients error finding patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Patient, 0, len(patients))
	for _, patient := range patients {
		entry := responses.Patient{
			PatientID: patient.ID.Hex(),
			FirstName: patient.FirstName,
			LastName:  patient.LastName,
			Email:     patient.Email,
		}
		consent, err := uc.ConsentRepository.FindByClinicAndPatient(ctx, clinicID, patient.ID.Hex())
		if err != nil {
			return nil, err
		}
		if consent != nil {
			entry.HasConsent = true
			entry.ConsentedAt = consent.GrantedAt.UTC().Format(time.RFC3339)
		}
		result = append(result, entry)
	}

	uc.Log.Info("patientUsecase.GetPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(result)),
	)
	return result, nil
}

// GetPatientSummary resolves the consent for the clinic patient, rotates an
// access token and flattens the provider's demographic record.
func (uc *patientUsecase) GetPatientSummary(ctx context.Context, clinicID, patientID string) (*responses.PatientSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatientSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.PatientRepository.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.ClinicID != clinicID {
		return nil, exceptions.WrapWithoutError(constvars.StatusNotFound, constvars.ErrClientPatientNotFound, constvars.ErrDevDBFailedToFindDocument)
	}

	consent, err := uc.ConsentRepository.FindByClinicAndPatient(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return nil, exceptions.ErrConsentNotFound(nil)
	}

	tokenData, err := uc.AuthUsecase.RotateRefreshToken(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}

	fhirPatient, err := uc.PatientFhirClient.FindPatientByID(ctx, tokenData.AccessToken, consent.ProviderPatientID)
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatientSummary error fetching provider patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	summary := MapPatientSummary(fhirPatient)
	uc.Log.Info("patientUsecase.GetPatientSummary succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return summary, nil
}

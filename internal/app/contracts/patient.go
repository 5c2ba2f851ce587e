package contracts

import (
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/dto/responses"
	"claimbridge-service/internal/pkg/fhir_dto"
	"context"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, clinicID string, request *requests.CreatePatientRequest) (*responses.Patient, error)
	GetPatients(ctx context.Context, clinicID string) ([]responses.Patient, error)
	GetPatientSummary(ctx context.Context, clinicID, patientID string) (*responses.PatientSummary, error)
}

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	FindPatientsByClinic(ctx context.Context, clinicID string) ([]models.Patient, error)
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}

type PatientFhirClient interface {
	FindPatientByID(ctx context.Context, accessToken, providerPatientID string) (*fhir_dto.Patient, error)
}

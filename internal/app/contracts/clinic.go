package contracts

import (
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/dto/responses"
	"context"
)

type ClinicUsecase interface {
	SignupClinic(ctx context.Context, request *requests.ClinicSignupRequest) (*responses.ClinicSignup, error)
	LoginClinic(ctx context.Context, request *requests.ClinicLoginRequest) (*responses.ClinicLogin, error)
	LogoutClinic(ctx context.Context, sessionID string) error
}

type ClinicRepository interface {
	CreateClinic(ctx context.Context, clinic *models.Clinic) (*models.Clinic, error)
	FindClinicByEmail(ctx context.Context, email string) (*models.Clinic, error)
	FindClinicByID(ctx context.Context, clinicID string) (*models.Clinic, error)
}

package clinics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/dto/responses"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type clinicUsecase struct {
	ClinicRepository contracts.ClinicRepository
	RedisRepository  contracts.RedisRepository
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

var (
	clinicUsecaseInstance contracts.ClinicUsecase
	onceClinicUsecase     sync.Once
)

func NewClinicUsecase(
	clinicRepository contracts.ClinicRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClinicUsecase {
	onceClinicUsecase.Do(func() {
		clinicUsecaseInstance = &clinicUsecase{
			ClinicRepository: clinicRepository,
			RedisRepository:  redisRepository,
			InternalConfig:   internalConfig,
			Log:              logger,
		}
	})
	return clinicUsecaseInstance
}

func (uc *clinicUsecase) SignupClinic(ctx context.Context, request *requests.ClinicSignupRequest) (*responses.ClinicSignup, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.SignupClinic called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.ClinicRepository.FindClinicByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("clinicUsecase.SignupClinic error checking existing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		err := exceptions.ErrEmailAlreadyExist(nil)
		uc.Log.Error("clinicUsecase.SignupClinic email already registered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("clinicUsecase.SignupClinic error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	now := time.Now().UTC()
	clinic, err := uc.ClinicRepository.CreateClinic(ctx, &models.Clinic{
		Name:      request.Name,
		Email:     request.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		uc.Log.Error("clinicUsecase.SignupClinic error creating clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("clinicUsecase.SignupClinic succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinic.ID.Hex()),
	)
	return &responses.ClinicSignup{
		ClinicID: clinic.ID.Hex(),
		Name:     clinic.Name,
		Email:    clinic.Email,
	}, nil
}

func (uc *clinicUsecase) LoginClinic(ctx context.Context, request *requests.ClinicLoginRequest) (*responses.ClinicLogin, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.LoginClinic called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinic, err := uc.ClinicRepository.FindClinicByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("clinicUsecase.LoginClinic error finding clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if clinic == nil || !utils.CheckPasswordHash(request.Password, clinic.Password) {
		err := exceptions.ErrInvalidEmailOrPassword(nil)
		uc.Log.Error("clinicUsecase.LoginClinic invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	sessionID := uuid.NewString()
	sessionKey := constvars.RedisKeyClinicSession + sessionID
	err = uc.RedisRepository.Set(ctx, sessionKey, clinic.ID.Hex(), time.Duration(uc.InternalConfig.JWT.ExpTimeInHour)*time.Hour)
	if err != nil {
		uc.Log.Error("clinicUsecase.LoginClinic error storing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(sessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("clinicUsecase.LoginClinic succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinic.ID.Hex()),
	)
	return &responses.ClinicLogin{Token: token}, nil
}

func (uc *clinicUsecase) LogoutClinic(ctx context.Context, sessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.LogoutClinic called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if sessionID == "" {
		return exceptions.ErrTokenMissing(fmt.Errorf("empty session id"))
	}
	return uc.RedisRepository.Delete(ctx, constvars.RedisKeyClinicSession+sessionID)
}

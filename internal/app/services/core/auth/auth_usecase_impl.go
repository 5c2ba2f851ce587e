package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
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

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	ConsentRepository contracts.ConsentRepository
	RedisRepository   contracts.RedisRepository
	LockerService     contracts.LockerService
	VaultService      contracts.VaultService
	TokenClient       contracts.TokenClient
	BlueButtonConfig  config.BlueButton
	Log               *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	consentRepository contracts.ConsentRepository,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	vaultService contracts.VaultService,
	tokenClient contracts.TokenClient,
	blueButtonConfig config.BlueButton,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			ConsentRepository: consentRepository,
			RedisRepository:   redisRepository,
			LockerService:     lockerService,
			VaultService:      vaultService,
			TokenClient:       tokenClient,
			BlueButtonConfig:  blueButtonConfig,
			Log:               logger,
		}
	})
	return authUsecaseInstance
}

// InitiateConsent opens the authorization flow for one clinic patient. The
// nonce, PKCE verifier and the patient binding are stored session-scoped in
// redis; the verifier never reaches the client.
func (uc *authUsecase) InitiateConsent(ctx context.Context, clinicID string, request *requests.InitiateConsentRequest) (*responses.InitiateConsent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.InitiateConsent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if clinicID == "" {
		err := exceptions.ErrAuthContext(nil)
		uc.Log.Error("authUsecase.InitiateConsent missing clinic identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	pkcePair, err := utils.GeneratePKCE()
	if err != nil {
		uc.Log.Error("authUsecase.InitiateConsent error generating PKCE pair",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrServerProcess(err)
	}

	nonce := uuid.NewString()
	session := models.OAuthSession{
		Nonce:             nonce,
		CodeVerifier:      pkcePair.Verifier,
		ClinicID:          clinicID,
		InternalPatientID: request.InternalPatientID,
	}
	err = uc.RedisRepository.Set(ctx, constvars.RedisKeyOAuthSession+nonce, session, constvars.OAuthSessionTTLMinutes*time.Minute)
	if err != nil {
		uc.Log.Error("authUsecase.InitiateConsent error storing oauth session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	state := url.Values{}
	state.Set(constvars.OAuthStateParamClinicID, clinicID)
	state.Set(constvars.OAuthStateParamNonce, nonce)

	authParams := url.Values{}
	authParams.Set("client_id", uc.BlueButtonConfig.ClientID)
	authParams.Set("redirect_uri", uc.BlueButtonConfig.RedirectURI)
	authParams.Set("response_type", constvars.OAuthResponseTypeCode)
	authParams.Set("state", state.Encode())
	authParams.Set("code_challenge", pkcePair.Challenge)
	authParams.Set("code_challenge_method", constvars.OAuthCodeChallengeMethodS256)

	uc.Log.Info("authUsecase.InitiateConsent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)
	return &responses.InitiateConsent{
		AuthorizationURL: fmt.Sprintf("%s?%s", uc.BlueButtonConfig.AuthURL, authParams.Encode()),
	}, nil
}

// HandleCallback consumes the provider redirect: it verifies the state
// nonce against the stored session, claims the authorization code, performs
// the token exchange and upserts the encrypted consent. The session is
// consumed exactly once, valid or not.
func (uc *authUsecase) HandleCallback(ctx context.Context, request *requests.ConsentCallbackRequest) (*responses.ConsentCallback, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.HandleCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	stateParams, err := url.ParseQuery(request.State)
	if err != nil {
		uc.Log.Error("authUsecase.HandleCallback error parsing state",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrOAuthStateMalformed(err)
	}
	clinicID := stateParams.Get(constvars.OAuthStateParamClinicID)
	receivedNonce := stateParams.Get(constvars.OAuthStateParamNonce)
	if clinicID == "" || receivedNonce == "" {
		err := exceptions.ErrOAuthStateMalformed(nil)
		uc.Log.Error("authUsecase.HandleCallback state missing clinicId or nonce",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	session, err := uc.consumeSession(ctx, requestID, receivedNonce)
	if err != nil {
		return nil, err
	}
	if session.Nonce != receivedNonce || session.ClinicID != clinicID {
		err := exceptions.ErrNonceMismatch(nil)
		uc.Log.Error("authUsecase.HandleCallback nonce or clinic binding mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}

	// Atomic claim so the code is exchangeable at most once, across every
	// instance. A failed exchange releases the claim since the provider
	// never accepted the code.
	codeKey := constvars.RedisKeyUsedAuthCode + hashAuthorizationCode(request.Code)
	claimed, err := uc.RedisRepository.TrySetNX(ctx, codeKey, "1", constvars.UsedAuthCodeTTLHours*time.Hour)
	if err != nil {
		uc.Log.Error("authUsecase.HandleCallback error claiming authorization code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !claimed {
		err := exceptions.ErrAuthCodeAlreadyUsed(nil)
		uc.Log.Error("authUsecase.HandleCallback authorization code replay",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	tokenData, err := uc.TokenClient.ExchangeAuthorizationCode(ctx, request.Code, session.CodeVerifier)
	if err != nil {
		uc.RedisRepository.Delete(ctx, codeKey)
		uc.Log.Error("authUsecase.HandleCallback token exchange failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	envelope, err := uc.VaultService.Encrypt(tokenData.RefreshToken)
	if err != nil {
		uc.Log.Error("authUsecase.HandleCallback error encrypting refresh token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	consent, err := uc.ConsentRepository.UpsertConsent(ctx, &models.Consent{
		ClinicID:          session.ClinicID,
		InternalPatientID: session.InternalPatientID,
		ProviderPatientID: tokenData.PatientID,
		RefreshToken:      envelope,
		Scope:             tokenData.Scope,
	})
	if err != nil {
		uc.Log.Error("authUsecase.HandleCallback error upserting consent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.HandleCallback succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, consent.ClinicID),
		zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
	)
	return &responses.ConsentCallback{
		ClinicID:          consent.ClinicID,
		InternalPatientID: consent.InternalPatientID,
		ProviderPatientID: consent.ProviderPatientID,
		GrantedAt:         consent.GrantedAt.UTC().Format(time.RFC3339),
	}, nil
}

// RotateRefreshToken exchanges the stored refresh token for a fresh pair
// under a per-consent lease lock plus a compare-and-swap on the stored
// envelope. The loser of a race surfaces a conflict instead of persisting a
// second "current" token.
func (uc *authUsecase) RotateRefreshToken(ctx context.Context, clinicID, internalPatientID string) (*contracts.TokenData, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RotateRefreshToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingPatientIDKey, internalPatientID),
	)

	consent, err := uc.ConsentRepository.FindByClinicAndPatient(ctx, clinicID, internalPatientID)
	if err != nil {
		uc.Log.Error("authUsecase.RotateRefreshToken error finding consent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if consent == nil {
		err := exceptions.ErrConsentNotFound(nil)
		uc.Log.Error("authUsecase.RotateRefreshToken no consent on file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}

	lockKey := constvars.RedisKeyConsentRotateLock + consent.ID.Hex()
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, constvars.RotationLockTTLSeconds*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		err := exceptions.ErrRefreshConflict(nil)
		uc.Log.Error("authUsecase.RotateRefreshToken rotation already in progress",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}
	defer uc.LockerService.Unlock(ctx, lockKey, lockValue)

	previousEnvelope := consent.RefreshToken
	refreshToken, err := uc.VaultService.Decrypt(previousEnvelope)
	if err != nil {
		uc.Log.Error("authUsecase.RotateRefreshToken error decrypting stored envelope",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	tokenData, err := uc.TokenClient.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		uc.Log.Error("authUsecase.RotateRefreshToken provider rejected refresh token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	if tokenData.RefreshToken != "" {
		newEnvelope, err := uc.VaultService.Encrypt(tokenData.RefreshToken)
		if err != nil {
			uc.Log.Error("authUsecase.RotateRefreshToken error encrypting rotated token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}

		swapped, err := uc.ConsentRepository.UpdateRefreshTokenCAS(ctx, consent.ID.Hex(), previousEnvelope, newEnvelope)
		if err != nil {
			return nil, err
		}
		if !swapped {
			err := exceptions.ErrRefreshConflict(nil)
			uc.Log.Error("authUsecase.RotateRefreshToken lost rotation race",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	uc.Log.Info("authUsecase.RotateRefreshToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsentIDKey, consent.ID.Hex()),
	)
	return tokenData, nil
}

func (uc *authUsecase) consumeSession(ctx context.Context, requestID, nonce string) (*models.OAuthSession, error) {
	sessionKey := constvars.RedisKeyOAuthSession + nonce
	sessionData, err := uc.RedisRepository.Get(ctx, sessionKey)
	if err != nil {
		uc.Log.Error("authUsecase.consumeSession error retrieving session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if sessionData == "" {
		err := exceptions.ErrNonceMismatch(nil)
		uc.Log.Error("authUsecase.consumeSession no session for nonce",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// One shot: the session is deleted before the exchange, so a replayed
	// callback can never reuse the verifier.
	if err := uc.RedisRepository.Delete(ctx, sessionKey); err != nil {
		return nil, err
	}

	session := new(models.OAuthSession)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		uc.Log.Error("authUsecase.consumeSession error unmarshaling session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func hashAuthorizationCode(code string) string {
	digest := sha256.Sum256([]byte(code))
	return hex.EncodeToString(digest[:])
}

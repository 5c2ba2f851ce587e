package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/app/models"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRedis struct {
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = string(data)
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeRedis) TrySetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, exists := f.store[key]; exists {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.store[key] = string(data)
	return true, nil
}

type fakeLocker struct {
	acquire     bool
	unlockCalls int
}

func (f *fakeLocker) TryLock(context.Context, string, time.Duration) (bool, string, error) {
	if !f.acquire {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (f *fakeLocker) Unlock(context.Context, string, string) error {
	f.unlockCalls++
	return nil
}

type fakeVault struct{}

func (fakeVault) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (fakeVault) Decrypt(envelope string) (string, error) {
	if !strings.HasPrefix(envelope, "enc:") {
		return "", exceptions.ErrVaultFormat(nil)
	}
	return strings.TrimPrefix(envelope, "enc:"), nil
}

type fakeConsentRepo struct {
	consent   *models.Consent
	upserted  *models.Consent
	casResult bool
	casCalls  int
	casOld    string
	casNew    string
}

func (f *fakeConsentRepo) UpsertConsent(_ context.Context, consent *models.Consent) (*models.Consent, error) {
	stored := *consent
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	if stored.GrantedAt.IsZero() {
		stored.GrantedAt = time.Now().UTC()
	}
	f.upserted = &stored
	return &stored, nil
}

func (f *fakeConsentRepo) FindByClinicAndPatient(context.Context, string, string) (*models.Consent, error) {
	return f.consent, nil
}

func (f *fakeConsentRepo) UpdateRefreshTokenCAS(_ context.Context, _, expectedEnvelope, newEnvelope string) (bool, error) {
	f.casCalls++
	f.casOld = expectedEnvelope
	f.casNew = newEnvelope
	return f.casResult, nil
}

type fakeTokenClient struct {
	exchangeResult *contracts.TokenData
	exchangeErr    error
	exchangeCalls  int
	refreshResult  *contracts.TokenData
	refreshErr     error
	refreshedWith  string
}

func (f *fakeTokenClient) ExchangeAuthorizationCode(context.Context, string, string) (*contracts.TokenData, error) {
	f.exchangeCalls++
	return f.exchangeResult, f.exchangeErr
}

func (f *fakeTokenClient) RefreshAccessToken(_ context.Context, refreshToken string) (*contracts.TokenData, error) {
	f.refreshedWith = refreshToken
	return f.refreshResult, f.refreshErr
}

type authFixture struct {
	uc      *authUsecase
	redis   *fakeRedis
	locker  *fakeLocker
	consent *fakeConsentRepo
	tokens  *fakeTokenClient
}

func newAuthFixture() *authFixture {
	redis := newFakeRedis()
	locker := &fakeLocker{acquire: true}
	consentRepo := &fakeConsentRepo{casResult: true}
	tokenClient := &fakeTokenClient{}

	return &authFixture{
		uc: &authUsecase{
			ConsentRepository: consentRepo,
			RedisRepository:   redis,
			LockerService:     locker,
			VaultService:      fakeVault{},
			TokenClient:       tokenClient,
			BlueButtonConfig: config.BlueButton{
				ClientID:    "client-id",
				RedirectURI: "https://broker.example.com/api/v1/auth/callback",
				AuthURL:     "https://sandbox.bluebutton.cms.gov/v2/o/authorize/",
			},
			Log: zap.NewNop(),
		},
		redis:   redis,
		locker:  locker,
		consent: consentRepo,
		tokens:  tokenClient,
	}
}

func (f *authFixture) storedSession(t *testing.T, authorizationURL string) *models.OAuthSession {
	t.Helper()
	parsed, err := url.Parse(authorizationURL)
	require.NoError(t, err)
	state, err := url.ParseQuery(parsed.Query().Get("state"))
	require.NoError(t, err)

	nonce := state.Get(constvars.OAuthStateParamNonce)
	require.NotEmpty(t, nonce)

	raw := f.redis.store[constvars.RedisKeyOAuthSession+nonce]
	require.NotEmpty(t, raw)

	session := new(models.OAuthSession)
	require.NoError(t, json.Unmarshal([]byte(raw), session))
	return session
}

func TestInitiateConsent(t *testing.T) {
	t.Run("builds authorization url and stores session", func(t *testing.T) {
		f := newAuthFixture()

		result, err := f.uc.InitiateConsent(context.Background(), "clinic-1", &requests.InitiateConsentRequest{
			InternalPatientID: "patient-1",
		})
		require.NoError(t, err)

		parsed, err := url.Parse(result.AuthorizationURL)
		require.NoError(t, err)
		query := parsed.Query()
		assert.Equal(t, "client-id", query.Get("client_id"))
		assert.Equal(t, "https://broker.example.com/api/v1/auth/callback", query.Get("redirect_uri"))
		assert.Equal(t, constvars.OAuthResponseTypeCode, query.Get("response_type"))
		assert.Equal(t, constvars.OAuthCodeChallengeMethodS256, query.Get("code_challenge_method"))
		assert.NotEmpty(t, query.Get("code_challenge"))

		state, err := url.ParseQuery(query.Get("state"))
		require.NoError(t, err)
		assert.Equal(t, "clinic-1", state.Get(constvars.OAuthStateParamClinicID))

		session := f.storedSession(t, result.AuthorizationURL)
		assert.Equal(t, "clinic-1", session.ClinicID)
		assert.Equal(t, "patient-1", session.InternalPatientID)
		assert.NotEmpty(t, session.CodeVerifier)
	})

	t.Run("missing clinic identity is rejected", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.uc.InitiateConsent(context.Background(), "", &requests.InitiateConsentRequest{
			InternalPatientID: "patient-1",
		})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})
}

func TestHandleCallback(t *testing.T) {
	initiate := func(t *testing.T, f *authFixture) string {
		t.Helper()
		result, err := f.uc.InitiateConsent(context.Background(), "clinic-1", &requests.InitiateConsentRequest{
			InternalPatientID: "patient-1",
		})
		require.NoError(t, err)

		parsed, err := url.Parse(result.AuthorizationURL)
		require.NoError(t, err)
		return parsed.Query().Get("state")
	}

	t.Run("success upserts encrypted consent", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.exchangeResult = &contracts.TokenData{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			PatientID:    "bb-patient-1",
			Scope:        "patient/ExplanationOfBenefit.read",
		}
		state := initiate(t, f)

		result, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{
			Code:  "auth-code",
			State: state,
		})
		require.NoError(t, err)

		assert.Equal(t, "clinic-1", result.ClinicID)
		assert.Equal(t, "patient-1", result.InternalPatientID)
		assert.Equal(t, "bb-patient-1", result.ProviderPatientID)
		assert.NotEmpty(t, result.GrantedAt)

		require.NotNil(t, f.consent.upserted)
		assert.Equal(t, "enc:refresh-token", f.consent.upserted.RefreshToken)
		assert.NotEqual(t, "refresh-token", f.consent.upserted.RefreshToken)
	})

	t.Run("session is consumed exactly once", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.exchangeResult = &contracts.TokenData{RefreshToken: "rt", PatientID: "bb-1"}
		state := initiate(t, f)

		_, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "code-1", State: state})
		require.NoError(t, err)

		_, err = f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "code-2", State: state})
		assert.Error(t, err)
		assert.Equal(t, 1, f.tokens.exchangeCalls)
	})

	t.Run("malformed state is rejected", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{
			Code:  "auth-code",
			State: "nonce-only",
		})

		assert.Error(t, err)
		assert.Nil(t, f.consent.upserted)
		assert.Zero(t, f.tokens.exchangeCalls)
	})

	t.Run("unknown nonce creates no consent", func(t *testing.T) {
		f := newAuthFixture()

		state := url.Values{}
		state.Set(constvars.OAuthStateParamClinicID, "clinic-1")
		state.Set(constvars.OAuthStateParamNonce, "forged-nonce")

		_, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{
			Code:  "auth-code",
			State: state.Encode(),
		})

		assert.Error(t, err)
		assert.Nil(t, f.consent.upserted)
		assert.Zero(t, f.tokens.exchangeCalls)
	})

	t.Run("clinic binding mismatch is rejected", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.exchangeResult = &contracts.TokenData{RefreshToken: "rt", PatientID: "bb-1"}
		state := initiate(t, f)

		parsed, err := url.ParseQuery(state)
		require.NoError(t, err)
		parsed.Set(constvars.OAuthStateParamClinicID, "other-clinic")

		_, err = f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{
			Code:  "auth-code",
			State: parsed.Encode(),
		})

		assert.Error(t, err)
		assert.Nil(t, f.consent.upserted)
		assert.Zero(t, f.tokens.exchangeCalls)
	})

	t.Run("authorization code replay is rejected", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.exchangeResult = &contracts.TokenData{RefreshToken: "rt", PatientID: "bb-1"}

		firstState := initiate(t, f)
		_, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "same-code", State: firstState})
		require.NoError(t, err)

		secondState := initiate(t, f)
		_, err = f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "same-code", State: secondState})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Contains(t, customErr.DevMessage, constvars.ErrDevOAuthCodeAlreadyUsed)
		assert.Equal(t, 1, f.tokens.exchangeCalls)
	})

	t.Run("failed exchange releases the code claim", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.exchangeErr = errors.New("provider unavailable")

		state := initiate(t, f)
		_, err := f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "flaky-code", State: state})
		require.Error(t, err)

		// the code was never accepted, so a retry with a fresh session works
		f.tokens.exchangeErr = nil
		f.tokens.exchangeResult = &contracts.TokenData{RefreshToken: "rt", PatientID: "bb-1"}

		retryState := initiate(t, f)
		_, err = f.uc.HandleCallback(context.Background(), &requests.ConsentCallbackRequest{Code: "flaky-code", State: retryState})
		assert.NoError(t, err)
	})
}

func TestRotateRefreshToken(t *testing.T) {
	existingConsent := func() *models.Consent {
		return &models.Consent{
			ID:                primitive.NewObjectID(),
			ClinicID:          "clinic-1",
			InternalPatientID: "patient-1",
			ProviderPatientID: "bb-patient-1",
			RefreshToken:      "enc:old-refresh-token",
		}
	}

	t.Run("missing consent is not found", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.uc.RotateRefreshToken(context.Background(), "clinic-1", "patient-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("rotates and persists the new envelope", func(t *testing.T) {
		f := newAuthFixture()
		f.consent.consent = existingConsent()
		f.tokens.refreshResult = &contracts.TokenData{
			AccessToken:  "new-access-token",
			RefreshToken: "new-refresh-token",
		}

		tokenData, err := f.uc.RotateRefreshToken(context.Background(), "clinic-1", "patient-1")
		require.NoError(t, err)

		assert.Equal(t, "new-access-token", tokenData.AccessToken)
		assert.Equal(t, "old-refresh-token", f.tokens.refreshedWith)
		assert.Equal(t, 1, f.consent.casCalls)
		assert.Equal(t, "enc:old-refresh-token", f.consent.casOld)
		assert.Equal(t, "enc:new-refresh-token", f.consent.casNew)
		assert.Equal(t, 1, f.locker.unlockCalls)
	})

	t.Run("keeps the old envelope when no refresh token returned", func(t *testing.T) {
		f := newAuthFixture()
		f.consent.consent = existingConsent()
		f.tokens.refreshResult = &contracts.TokenData{AccessToken: "new-access-token"}

		tokenData, err := f.uc.RotateRefreshToken(context.Background(), "clinic-1", "patient-1")
		require.NoError(t, err)

		assert.Equal(t, "new-access-token", tokenData.AccessToken)
		assert.Zero(t, f.consent.casCalls)
	})

	t.Run("conflict when lock is held elsewhere", func(t *testing.T) {
		f := newAuthFixture()
		f.consent.consent = existingConsent()
		f.locker.acquire = false

		_, err := f.uc.RotateRefreshToken(context.Background(), "clinic-1", "patient-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("conflict when the compare and swap loses", func(t *testing.T) {
		f := newAuthFixture()
		f.consent.consent = existingConsent()
		f.consent.casResult = false
		f.tokens.refreshResult = &contracts.TokenData{
			AccessToken:  "new-access-token",
			RefreshToken: "new-refresh-token",
		}

		_, err := f.uc.RotateRefreshToken(context.Background(), "clinic-1", "patient-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

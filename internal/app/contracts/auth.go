package contracts

import (
	"claimbridge-service/internal/pkg/dto/requests"
	"claimbridge-service/internal/pkg/dto/responses"
	"context"
)

// TokenData is the decoded payload of a successful token endpoint call.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	PatientID    string `json:"patient"`
}

type AuthUsecase interface {
	InitiateConsent(ctx context.Context, clinicID string, request *requests.InitiateConsentRequest) (*responses.InitiateConsent, error)
	HandleCallback(ctx context.Context, request *requests.ConsentCallbackRequest) (*responses.ConsentCallback, error)
	// RotateRefreshToken exchanges the stored refresh token for a fresh pair
	// and persists the rotated envelope before returning the access token.
	RotateRefreshToken(ctx context.Context, clinicID, internalPatientID string) (*TokenData, error)
}

type TokenClient interface {
	ExchangeAuthorizationCode(ctx context.Context, code, codeVerifier string) (*TokenData, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenData, error)
}

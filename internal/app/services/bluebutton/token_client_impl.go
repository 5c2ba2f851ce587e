package bluebutton

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"claimbridge-service/internal/app/config"
	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	tokenClientInstance contracts.TokenClient
	onceTokenClient     sync.Once
)

type tokenClient struct {
	cfg        config.BlueButton
	httpClient *http.Client
	Log        *zap.Logger
}

func NewTokenClient(cfg config.BlueButton, logger *zap.Logger) contracts.TokenClient {
	onceTokenClient.Do(func() {
		tokenClientInstance = &tokenClient{
			cfg:        cfg,
			httpClient: &http.Client{Timeout: 30 * time.Second},
			Log:        logger,
		}
	})
	return tokenClientInstance
}

func (c *tokenClient) ExchangeAuthorizationCode(ctx context.Context, code, codeVerifier string) (*contracts.TokenData, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("tokenClient.ExchangeAuthorizationCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	form := url.Values{}
	form.Set("grant_type", constvars.OAuthGrantTypeAuthorizationCode)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("code_verifier", codeVerifier)

	tokenData, err := c.postTokenForm(ctx, requestID, form)
	if err != nil {
		return nil, exceptions.ErrTokenExchange(err)
	}
	if tokenData.RefreshToken == "" || tokenData.PatientID == "" {
		err := fmt.Errorf(constvars.ErrDevOAuthMissingTokenData)
		c.Log.Error("tokenClient.ExchangeAuthorizationCode incomplete token response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenExchange(err)
	}

	c.Log.Info("tokenClient.ExchangeAuthorizationCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, tokenData.PatientID),
	)
	return tokenData, nil
}

func (c *tokenClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*contracts.TokenData, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("tokenClient.RefreshAccessToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	form := url.Values{}
	form.Set("grant_type", constvars.OAuthGrantTypeRefreshToken)
	form.Set("refresh_token", refreshToken)

	tokenData, err := c.postTokenForm(ctx, requestID, form)
	if err != nil {
		return nil, exceptions.ErrTokenRefresh(err)
	}

	c.Log.Info("tokenClient.RefreshAccessToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return tokenData, nil
}

func (c *tokenClient) postTokenForm(ctx context.Context, requestID string, form url.Values) (*contracts.TokenData, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.Log.Error("tokenClient.postTokenForm error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Log.Error("tokenClient.postTokenForm error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(bodyBytes))
		c.Log.Error("tokenClient.postTokenForm provider rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, err
	}

	tokenData := new(contracts.TokenData)
	if err := json.NewDecoder(resp.Body).Decode(tokenData); err != nil {
		c.Log.Error("tokenClient.postTokenForm error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return tokenData, nil
}

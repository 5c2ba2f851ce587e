package bluebutton

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	coverageFhirClientInstance contracts.CoverageFhirClient
	onceCoverageFhirClient     sync.Once
)

type coverageFhirClient struct {
	BaseUrl    string
	httpClient *http.Client
	Log        *zap.Logger
}

func NewCoverageFhirClient(baseUrl string, logger *zap.Logger) contracts.CoverageFhirClient {
	onceCoverageFhirClient.Do(func() {
		coverageFhirClientInstance = &coverageFhirClient{
			BaseUrl:    baseUrl + constvars.ResourceCoverage,
			httpClient: &http.Client{Timeout: 30 * time.Second},
			Log:        logger,
		}
	})
	return coverageFhirClientInstance
}

func (c *coverageFhirClient) SearchCoverage(ctx context.Context, accessToken, providerPatientID string) (*fhir_dto.Bundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("coverageFhirClient.SearchCoverage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, providerPatientID),
	)

	query := url.Values{}
	query.Set("beneficiary", providerPatientID)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s?%s", c.BaseUrl, query.Encode()), nil)
	if err != nil {
		c.Log.Error("coverageFhirClient.SearchCoverage error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+accessToken)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Log.Error("coverageFhirClient.SearchCoverage error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("claims API returned %d: %s", resp.StatusCode, string(bodyBytes))
		c.Log.Error("coverageFhirClient.SearchCoverage non-OK response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrEobFetch(err)
	}

	bundle := new(fhir_dto.Bundle)
	if err := json.NewDecoder(resp.Body).Decode(bundle); err != nil {
		c.Log.Error("coverageFhirClient.SearchCoverage error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceCoverage)
	}

	c.Log.Info("coverageFhirClient.SearchCoverage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return bundle, nil
}

package nih

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	codeLookupClientInstance contracts.CodeLookupClient
	onceCodeLookupClient     sync.Once
)

type codeLookupClient struct {
	BaseUrl    string
	httpClient *http.Client
	Log        *zap.Logger
}

func NewCodeLookupClient(baseUrl string, logger *zap.Logger) contracts.CodeLookupClient {
	onceCodeLookupClient.Do(func() {
		codeLookupClientInstance = &codeLookupClient{
			BaseUrl:    baseUrl,
			httpClient: &http.Client{Timeout: 15 * time.Second},
			Log:        logger,
		}
	})
	return codeLookupClientInstance
}

// LookupProcedureCode queries the NIH clinical tables API for an ICD-10-PCS
// code. The API response is a positional array; the description sits at
// index 3, first result, second element.
func (c *codeLookupClient) LookupProcedureCode(ctx context.Context, code string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("codeLookupClient.LookupProcedureCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCodeKey, code),
	)

	query := url.Values{}
	query.Set("sf", "code")
	query.Set("terms", code)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s?%s", c.BaseUrl, query.Encode()), nil)
	if err != nil {
		c.Log.Error("codeLookupClient.LookupProcedureCode error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Log.Error("codeLookupClient.LookupProcedureCode error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		err := fmt.Errorf("code lookup API returned %d", resp.StatusCode)
		c.Log.Error("codeLookupClient.LookupProcedureCode non-OK response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return "", exceptions.ErrSendHTTPRequest(err)
	}

	var payload []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.Log.Error("codeLookupClient.LookupProcedureCode error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrCannotParseJSON(err)
	}

	description := extractDescription(payload)
	if description == "" {
		description = fmt.Sprintf("No description found for code %s", code)
	}

	c.Log.Info("codeLookupClient.LookupProcedureCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCodeKey, code),
	)
	return description, nil
}

func extractDescription(payload []interface{}) string {
	if len(payload) < 4 {
		return ""
	}
	results, ok := payload[3].([]interface{})
	if !ok || len(results) == 0 {
		return ""
	}
	first, ok := results[0].([]interface{})
	if !ok || len(first) < 2 {
		return ""
	}
	description, _ := first[1].(string)
	return description
}

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
	"golang.org/x/sync/errgroup"
)

var (
	eobFhirClientInstance contracts.EobFhirClient
	onceEobFhirClient     sync.Once
)

type eobFhirClient struct {
	BaseUrl    string
	httpClient *http.Client
	Log        *zap.Logger
}

func NewEobFhirClient(baseUrl string, logger *zap.Logger) contracts.EobFhirClient {
	onceEobFhirClient.Do(func() {
		eobFhirClientInstance = &eobFhirClient{
			BaseUrl:    baseUrl + constvars.ResourceExplanationOfBenefit,
			httpClient: &http.Client{Timeout: 60 * time.Second},
			Log:        logger,
		}
	})
	return eobFhirClientInstance
}

// SearchEob fans out one request per claim type and joins the results. Any
// single failure fails the whole search; a partial bundle is never returned.
func (c *eobFhirClient) SearchEob(ctx context.Context, accessToken, providerPatientID string, claimTypes []string) (*fhir_dto.Bundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("eobFhirClient.SearchEob called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, providerPatientID),
		zap.Strings(constvars.LoggingClaimTypesKey, claimTypes),
	)

	urls := c.searchURLs(providerPatientID, claimTypes)
	perRequest := make([][]fhir_dto.BundleEntry, len(urls))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, searchURL := range urls {
		i, searchURL := i, searchURL
		group.Go(func() error {
			bundle, err := c.fetchBundle(groupCtx, requestID, accessToken, searchURL)
			if err != nil {
				return err
			}
			perRequest[i] = bundle.Entry
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		c.Log.Error("eobFhirClient.SearchEob error fetching search sets",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	merged := &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.BundleTypeSearchset,
	}
	for _, entries := range perRequest {
		merged.Entry = append(merged.Entry, entries...)
	}

	c.Log.Info("eobFhirClient.SearchEob succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(merged.Entry)),
	)
	return merged, nil
}

func (c *eobFhirClient) searchURLs(providerPatientID string, claimTypes []string) []string {
	if len(claimTypes) == 0 {
		return []string{c.searchURL(providerPatientID, "")}
	}
	urls := make([]string, 0, len(claimTypes))
	for _, claimType := range claimTypes {
		urls = append(urls, c.searchURL(providerPatientID, claimType))
	}
	return urls
}

func (c *eobFhirClient) searchURL(providerPatientID, claimType string) string {
	query := url.Values{}
	query.Set("patient", providerPatientID)
	if claimType != "" {
		query.Set("type", claimType)
	}
	query.Set("_summary", "true")
	return fmt.Sprintf("%s?%s", c.BaseUrl, query.Encode())
}

func (c *eobFhirClient) fetchBundle(ctx context.Context, requestID, accessToken, searchURL string) (*fhir_dto.Bundle, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, searchURL, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+accessToken)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrEobFetch(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.ErrEobFetch(fmt.Errorf("claims API returned %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	bundle := new(fhir_dto.Bundle)
	if err := json.NewDecoder(resp.Body).Decode(bundle); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceExplanationOfBenefit)
	}
	return bundle, nil
}

package bluebutton

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEobClient(serverURL string) *eobFhirClient {
	return &eobFhirClient{
		BaseUrl:    serverURL + "/" + constvars.ResourceExplanationOfBenefit,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		Log:        zap.NewNop(),
	}
}

func searchsetResponse(t *testing.T, ids ...string) []byte {
	t.Helper()
	bundle := fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.BundleTypeSearchset,
	}
	for _, id := range ids {
		bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
			Resource: json.RawMessage(fmt.Sprintf(`{"resourceType":"ExplanationOfBenefit","id":"%s"}`, id)),
		})
	}
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	return raw
}

func TestSearchEob(t *testing.T) {
	t.Run("sends patient, type and summary parameters", func(t *testing.T) {
		var gotQuery, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotAuth = r.Header.Get(constvars.HeaderAuthorization)
			w.Write(searchsetResponse(t, "eob-1"))
		}))
		defer server.Close()

		client := newTestEobClient(server.URL)
		_, err := client.SearchEob(context.Background(), "access-token", "bb-patient-1", []string{"pde"})
		require.NoError(t, err)

		assert.Contains(t, gotQuery, "patient=bb-patient-1")
		assert.Contains(t, gotQuery, "type=pde")
		assert.Contains(t, gotQuery, "_summary=true")
		assert.Equal(t, "Bearer access-token", gotAuth)
	})

	t.Run("no types issues one unfiltered request", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
			assert.Empty(t, r.URL.Query().Get("type"))
			w.Write(searchsetResponse(t, "eob-1"))
		}))
		defer server.Close()

		client := newTestEobClient(server.URL)
		bundle, err := client.SearchEob(context.Background(), "access-token", "bb-patient-1", nil)
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
		assert.Len(t, bundle.Entry, 1)
	})

	t.Run("merges per type results in request order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claimType := r.URL.Query().Get("type")
			w.Write(searchsetResponse(t, claimType+"-a", claimType+"-b"))
		}))
		defer server.Close()

		client := newTestEobClient(server.URL)
		bundle, err := client.SearchEob(context.Background(), "access-token", "bb-patient-1", []string{"carrier", "pde"})
		require.NoError(t, err)

		require.Len(t, bundle.Entry, 4)
		assert.Equal(t, constvars.ResourceBundle, bundle.ResourceType)
		assert.Equal(t, constvars.BundleTypeSearchset, bundle.Type)

		var ids []string
		for _, entry := range bundle.Entry {
			var resource struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(entry.Resource, &resource))
			ids = append(ids, resource.ID)
		}
		assert.Equal(t, []string{"carrier-a", "carrier-b", "pde-a", "pde-b"}, ids)
	})

	t.Run("any failed request fails the whole search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("type") == "inpatient" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write(searchsetResponse(t, "eob-1"))
		}))
		defer server.Close()

		client := newTestEobClient(server.URL)
		bundle, err := client.SearchEob(context.Background(), "access-token", "bb-patient-1", []string{"carrier", "inpatient"})

		assert.Error(t, err)
		assert.Nil(t, bundle)
	})

	t.Run("undecodable body is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not-json"))
		}))
		defer server.Close()

		client := newTestEobClient(server.URL)
		_, err := client.SearchEob(context.Background(), "access-token", "bb-patient-1", nil)
		assert.Error(t, err)
	})
}

package contracts

import (
	"claimbridge-service/internal/pkg/eob"
	"claimbridge-service/internal/pkg/fhir_dto"
	"context"
)

type ClaimsUsecase interface {
	GetPatientClaims(ctx context.Context, clinicID, internalPatientID string, claimTypes []string) (*eob.CategorizedClaims, error)
	GetPatientCoverage(ctx context.Context, clinicID, internalPatientID string) (*fhir_dto.Bundle, error)
}

type EobFhirClient interface {
	// SearchEob issues one request per requested claim type concurrently and
	// merges the search sets into a single bundle. No types means one
	// unfiltered request.
	SearchEob(ctx context.Context, accessToken, providerPatientID string, claimTypes []string) (*fhir_dto.Bundle, error)
}

type CoverageFhirClient interface {
	SearchCoverage(ctx context.Context, accessToken, providerPatientID string) (*fhir_dto.Bundle, error)
}

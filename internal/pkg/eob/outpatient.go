package eob

import (
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"
)

// NormalizeOutpatient flattens an outpatient institutional claim.
func NormalizeOutpatient(resource *fhir_dto.ExplanationOfBenefit) (*OutpatientClaim, error) {
	if resource == nil || resource.ResourceType != constvars.ResourceExplanationOfBenefit {
		return nil, exceptions.ErrInvalidClaimShape(nil)
	}

	claim := &OutpatientClaim{
		ID:             resource.ID,
		Status:         resource.Status,
		BillablePeriod: resource.BillablePeriod,
		Created:        resource.Created,
		Organizations:  mapOrganizations(resource.Contained),
		Identifiers:    mapIdentifiers(resource.Identifier),
		CareTeam:       mapCareTeam(resource.CareTeam),
		Diagnoses:      mapDiagnoses(resource.Diagnosis),
		Procedures:     mapProcedures(resource.Procedure),
		Financials:     summarizeFinancials(resource.Item),
	}
	if resource.Meta != nil {
		claim.LastUpdated = resource.Meta.LastUpdated
	}

	claim.Items = mapLineItems(resource.Item, claim.Diagnoses, claim.CareTeam)
	return claim, nil
}

package eob

import (
	"fmt"
	"strings"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"
)

const (
	extensionURLPharmacyType = "https://bluebutton.cms.gov/resources/variables/phrmcy_srvc_type_cd"
	extensionURLOriginCode   = "https://bluebutton.cms.gov/resources/variables/rx_orgn_cd"
)

// NormalizePDE flattens a Part D prescription drug event.
func NormalizePDE(resource *fhir_dto.ExplanationOfBenefit) (*PDEClaim, error) {
	if resource == nil || resource.ResourceType != constvars.ResourceExplanationOfBenefit {
		return nil, exceptions.ErrInvalidClaimShape(nil)
	}

	claim := &PDEClaim{
		ID:           resource.ID,
		Status:       resource.Status,
		Created:      resource.Created,
		Outcome:      resource.Outcome,
		PharmacyType: extensionCodingDisplay(resource.Extension, extensionURLPharmacyType),
		OriginCode:   extensionCodingCode(resource.Extension, extensionURLOriginCode),
		CareTeam:     mapCareTeam(resource.CareTeam),
		Financials:   summarizeFinancials(resource.Item),
	}
	if resource.Meta != nil {
		claim.LastUpdated = resource.Meta.LastUpdated
	}
	if resource.BillablePeriod != nil && resource.BillablePeriod.Start != "" && resource.BillablePeriod.End != "" {
		claim.BillablePeriod = fmt.Sprintf("%s to %s", resource.BillablePeriod.Start, resource.BillablePeriod.End)
	}
	if resource.Facility != nil && resource.Facility.Display != "" {
		facility := resource.Facility.Display
		if resource.Facility.Identifier != nil && resource.Facility.Identifier.Value != "" {
			facility = fmt.Sprintf("%s (%s)", facility, resource.Facility.Identifier.Value)
		}
		claim.Facility = strings.TrimSpace(facility)
	}

	claim.SupportingInfo = mapSupportingInfo(resource.SupportingInfo)
	claim.Items = mapLineItems(resource.Item, nil, claim.CareTeam)
	return claim, nil
}

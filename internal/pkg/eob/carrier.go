package eob

import (
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"
)

const extensionURLCarrierNumber = "https://bluebutton.cms.gov/resources/variables/carr_num"

// NormalizeCarrier flattens a carrier (Part B professional) claim. Only a
// wrong resource kind is an error; any missing field falls back to its
// defined default.
func NormalizeCarrier(resource *fhir_dto.ExplanationOfBenefit) (*CarrierClaim, error) {
	if resource == nil || resource.ResourceType != constvars.ResourceExplanationOfBenefit {
		return nil, exceptions.ErrInvalidClaimShape(nil)
	}

	claim := &CarrierClaim{
		ID:             resource.ID,
		Status:         resource.Status,
		Use:            resource.Use,
		BillablePeriod: resource.BillablePeriod,
		Created:        resource.Created,
		Insurer:        referenceValue(resource.Insurer),
		Outcome:        resource.Outcome,
		Identifiers:    mapIdentifiers(resource.Identifier),
		CareTeam:       mapCareTeam(resource.CareTeam),
		Diagnoses:      mapDiagnoses(resource.Diagnosis),
		Financials:     summarizeFinancials(resource.Item),
	}
	if resource.Patient != nil {
		claim.PatientRef = resource.Patient.Reference
	}
	if ext := findExtension(resource.Extension, extensionURLCarrierNumber); ext != nil && ext.ValueIdentifier != nil {
		claim.CarrierNumber = ext.ValueIdentifier.Value
	}

	for _, contained := range resource.Contained {
		claim.Observations = append(claim.Observations, ContainedObservation{
			ID:     contained.ID,
			Status: contained.Status,
			Codes:  codingPairs(contained.Code),
			Value:  quantityValue(contained.ValueQuantity),
		})
	}

	if resource.Referral != nil && resource.Referral.Identifier != nil {
		identifier := resource.Referral.Identifier
		if coding := firstCoding(identifier.Type); coding != nil {
			claim.Referral = &Referral{
				Code:    coding.Code,
				Display: coding.Display,
				Value:   identifier.Value,
			}
		}
	}

	claim.Items = mapLineItems(resource.Item, claim.Diagnoses, claim.CareTeam)
	return claim, nil
}

func quantityValue(quantity *fhir_dto.Quantity) float64 {
	if quantity == nil {
		return 0
	}
	return quantity.Value
}

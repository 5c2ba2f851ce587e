package eob

import (
	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"
)

const extensionURLUtilizationDays = "https://bluebutton.cms.gov/resources/variables/clm_utlztn_day_cnt"

// NormalizeInpatient flattens an inpatient (Part A institutional) claim.
func NormalizeInpatient(resource *fhir_dto.ExplanationOfBenefit) (*InpatientClaim, error) {
	if resource == nil || resource.ResourceType != constvars.ResourceExplanationOfBenefit {
		return nil, exceptions.ErrInvalidClaimShape(nil)
	}

	claim := &InpatientClaim{
		ID:                  resource.ID,
		Status:              resource.Status,
		Use:                 resource.Use,
		BillablePeriod:      resource.BillablePeriod,
		Created:             resource.Created,
		Insurer:             referenceValue(resource.Insurer),
		Outcome:             resource.Outcome,
		UtilizationDayCount: extensionQuantity(resource.Extension, extensionURLUtilizationDays),
		Organizations:       mapOrganizations(resource.Contained),
		Identifiers:         mapIdentifiers(resource.Identifier),
		CareTeam:            mapCareTeam(resource.CareTeam),
		Diagnoses:           mapDiagnoses(resource.Diagnosis),
		Procedures:          mapProcedures(resource.Procedure),
		SupportingInfo:      mapSupportingInfo(resource.SupportingInfo),
		Financials:          summarizeFinancials(resource.Item),
	}
	if resource.Patient != nil {
		claim.PatientRef = resource.Patient.Reference
	}

	claim.SubType = SubType{Display: NotProvided}
	if resource.SubType != nil {
		claim.SubType.Text = resource.SubType.Text
		if coding := firstCoding(resource.SubType); coding != nil {
			claim.SubType.Code = coding.Code
			if coding.Display != "" {
				claim.SubType.Display = coding.Display
			}
		}
	}

	claim.Items = mapLineItems(resource.Item, claim.Diagnoses, claim.CareTeam)
	return claim, nil
}

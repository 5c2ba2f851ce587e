package eob

import (
	"testing"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCarrier(t *testing.T) {
	t.Run("wrong resource kind is an error", func(t *testing.T) {
		_, err := NormalizeCarrier(&fhir_dto.ExplanationOfBenefit{ResourceType: constvars.ResourcePatient})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("nil resource is an error", func(t *testing.T) {
		_, err := NormalizeCarrier(nil)
		assert.Error(t, err)
	})

	t.Run("flattens carrier number and referral", func(t *testing.T) {
		resource := &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "carrier-claim-1",
			Status:       "active",
			Use:          "claim",
			Outcome:      "complete",
			Patient:      &fhir_dto.Reference{Reference: "Patient/12345"},
			Insurer:      &fhir_dto.Reference{Identifier: &fhir_dto.Identifier{Value: "CMS"}},
			Extension: []fhir_dto.Extension{
				{
					Url:             extensionURLCarrierNumber,
					ValueIdentifier: &fhir_dto.Identifier{Value: "61026"},
				},
			},
			Referral: &fhir_dto.Reference{
				Identifier: &fhir_dto.Identifier{
					Type: &fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{{Code: "npi", Display: "National Provider Identifier"}},
					},
					Value: "999333",
				},
			},
		}

		claim, err := NormalizeCarrier(resource)
		require.NoError(t, err)

		assert.Equal(t, "carrier-claim-1", claim.ID)
		assert.Equal(t, "Patient/12345", claim.PatientRef)
		assert.Equal(t, "CMS", claim.Insurer)
		assert.Equal(t, "61026", claim.CarrierNumber)
		require.NotNil(t, claim.Referral)
		assert.Equal(t, "npi", claim.Referral.Code)
		assert.Equal(t, "999333", claim.Referral.Value)
	})

	t.Run("flattens contained observations", func(t *testing.T) {
		resource := &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "carrier-claim-2",
			Contained: []fhir_dto.ContainedResource{
				{
					ResourceType: constvars.ResourceObservation,
					ID:           "line-observation-1",
					Status:       "final",
					Code: &fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{{Code: "85610", Display: "Prothrombin time"}},
					},
					ValueQuantity: &fhir_dto.Quantity{Value: 12.4},
				},
			},
		}

		claim, err := NormalizeCarrier(resource)
		require.NoError(t, err)

		require.Len(t, claim.Observations, 1)
		assert.Equal(t, "line-observation-1", claim.Observations[0].ID)
		assert.Equal(t, 12.4, claim.Observations[0].Value)
		require.Len(t, claim.Observations[0].Codes, 1)
		assert.Equal(t, "85610", claim.Observations[0].Codes[0].Code)
	})

	t.Run("missing optional fields fall back to defaults", func(t *testing.T) {
		claim, err := NormalizeCarrier(&fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "carrier-claim-3",
		})
		require.NoError(t, err)

		assert.Empty(t, claim.CarrierNumber)
		assert.Nil(t, claim.Referral)
		assert.Empty(t, claim.Items)
		assert.Zero(t, claim.Financials.Summary.SubmittedAmount)
	})
}

func TestNormalizeInpatient(t *testing.T) {
	t.Run("reads utilization days and sub type", func(t *testing.T) {
		resource := &fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "inpatient-claim-1",
			SubType: &fhir_dto.CodeableConcept{
				Text: "inpatient",
				Coding: []fhir_dto.Coding{
					{Code: "inpatient", Display: "Inpatient"},
				},
			},
			Extension: []fhir_dto.Extension{
				{
					Url:           extensionURLUtilizationDays,
					ValueQuantity: &fhir_dto.Quantity{Value: 4},
				},
			},
		}

		claim, err := NormalizeInpatient(resource)
		require.NoError(t, err)

		assert.Equal(t, 4.0, claim.UtilizationDayCount)
		assert.Equal(t, "inpatient", claim.SubType.Code)
		assert.Equal(t, "Inpatient", claim.SubType.Display)
	})

	t.Run("sub type display defaults when absent", func(t *testing.T) {
		claim, err := NormalizeInpatient(&fhir_dto.ExplanationOfBenefit{
			ResourceType: constvars.ResourceExplanationOfBenefit,
			ID:           "inpatient-claim-2",
		})
		require.NoError(t, err)

		assert.Equal(t, NotProvided, claim.SubType.Display)
	})
}

func TestNormalizePDE(t *testing.T) {
	t.Run("formats billable period and facility", func(t *testing.T) {
		resource := &fhir_dto.ExplanationOfBenefit{
			ResourceType:   constvars.ResourceExplanationOfBenefit,
			ID:             "pde-claim-1",
			BillablePeriod: &fhir_dto.Period{Start: "2024-01-01", End: "2024-01-31"},
			Facility: &fhir_dto.Reference{
				Display:    "Main Street Pharmacy",
				Identifier: &fhir_dto.Identifier{Value: "1497758544"},
			},
			Extension: []fhir_dto.Extension{
				{
					Url:         extensionURLPharmacyType,
					ValueCoding: &fhir_dto.Coding{Code: "01", Display: "Community/retail pharmacy"},
				},
				{
					Url:         extensionURLOriginCode,
					ValueCoding: &fhir_dto.Coding{Code: "3", Display: "Electronic"},
				},
			},
		}

		claim, err := NormalizePDE(resource)
		require.NoError(t, err)

		assert.Equal(t, "2024-01-01 to 2024-01-31", claim.BillablePeriod)
		assert.Equal(t, "Main Street Pharmacy (1497758544)", claim.Facility)
		assert.Equal(t, "Community/retail pharmacy", claim.PharmacyType)
		assert.Equal(t, "3", claim.OriginCode)
	})

	t.Run("open billable period is omitted", func(t *testing.T) {
		claim, err := NormalizePDE(&fhir_dto.ExplanationOfBenefit{
			ResourceType:   constvars.ResourceExplanationOfBenefit,
			ID:             "pde-claim-2",
			BillablePeriod: &fhir_dto.Period{Start: "2024-01-01"},
		})
		require.NoError(t, err)

		assert.Empty(t, claim.BillablePeriod)
	})
}

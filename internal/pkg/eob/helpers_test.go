package eob

import (
	"testing"

	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjudicatedItem(categoryDisplay string, amount float64) fhir_dto.EobItem {
	return fhir_dto.EobItem{
		Sequence: 1,
		Adjudication: []fhir_dto.EobAdjudication{
			{
				Category: &fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{{Display: categoryDisplay}},
				},
				Amount: &fhir_dto.Money{Value: amount},
			},
		},
	}
}

func TestSummarizeFinancials(t *testing.T) {
	t.Run("eligible maps to allowed amount", func(t *testing.T) {
		financials := summarizeFinancials([]fhir_dto.EobItem{
			adjudicatedItem("Line Beneficiary Part B Deductible Amount", 20.00),
			adjudicatedItem("Eligible Amount", 120.50),
		})

		assert.Equal(t, 120.50, financials.Summary.AllowedAmount)
		assert.Equal(t, 20.00, financials.Summary.DeductibleAmount)
	})

	t.Run("absent categories default to zero", func(t *testing.T) {
		financials := summarizeFinancials(nil)

		assert.Zero(t, financials.Summary.SubmittedAmount)
		assert.Zero(t, financials.Summary.AllowedAmount)
		assert.Zero(t, financials.Summary.PaidToProvider)
		assert.Zero(t, financials.Summary.PaidToPatient)
		assert.Zero(t, financials.Summary.NonCoveredAmount)
		assert.Zero(t, financials.Summary.DeductibleAmount)
		assert.Zero(t, financials.Summary.CoinsuranceAmount)
		assert.Zero(t, financials.Summary.CoveredAmount)
	})

	t.Run("covered is submitted minus non covered", func(t *testing.T) {
		financials := summarizeFinancials([]fhir_dto.EobItem{
			adjudicatedItem("Submitted Amount", 200.00),
			adjudicatedItem("NCH Non Covered Amount", 45.25),
		})

		assert.Equal(t, 200.00, financials.Summary.SubmittedAmount)
		assert.Equal(t, 45.25, financials.Summary.NonCoveredAmount)
		assert.Equal(t, 154.75, financials.Summary.CoveredAmount)
	})

	t.Run("amounts accumulate across line items", func(t *testing.T) {
		financials := summarizeFinancials([]fhir_dto.EobItem{
			adjudicatedItem("Coinsurance Amount", 10.00),
			adjudicatedItem("Co-insurance amount", 15.00),
		})

		assert.Equal(t, 25.00, financials.Summary.CoinsuranceAmount)
	})

	t.Run("paid direction is distinguished", func(t *testing.T) {
		financials := summarizeFinancials([]fhir_dto.EobItem{
			adjudicatedItem("Amount Paid to Provider", 80.00),
			adjudicatedItem("Amount Paid to Patient", 5.00),
		})

		assert.Equal(t, 80.00, financials.Summary.PaidToProvider)
		assert.Equal(t, 5.00, financials.Summary.PaidToPatient)
	})

	t.Run("unmatched categories are ignored", func(t *testing.T) {
		financials := summarizeFinancials([]fhir_dto.EobItem{
			adjudicatedItem("Some Unknown Category", 999.99),
		})

		assert.Equal(t, FinancialSummary{}, financials.Summary)
	})
}

func TestFoldAdjudicationTerm(t *testing.T) {
	assert.Equal(t, "noncovered", foldAdjudicationTerm("Non-Covered"))
	assert.Equal(t, "nchnoncoveredamount", foldAdjudicationTerm("NCH Non Covered Amount"))
	assert.Equal(t, "paidtoprovider", foldAdjudicationTerm("paid_to_provider"))
}

func TestMapLineItemsSequenceResolution(t *testing.T) {
	diagnoses := []Diagnosis{
		{Sequence: 1, Codes: []CodeDisplay{{Code: "E11.9"}}},
		{Sequence: 2, Codes: []CodeDisplay{{Code: "I10"}}},
	}
	careTeam := []CareTeamMember{
		{Sequence: 1, Name: "Dr. Smith"},
	}

	items := []fhir_dto.EobItem{
		{
			Sequence:          1,
			DiagnosisSequence: []int{2, 7},
			CareTeamSequence:  []int{1, 9},
		},
	}

	mapped := mapLineItems(items, diagnoses, careTeam)
	require.Len(t, mapped, 1)

	t.Run("resolved sequences embed the full record", func(t *testing.T) {
		require.Len(t, mapped[0].Diagnoses, 1)
		assert.Equal(t, "I10", mapped[0].Diagnoses[0].Codes[0].Code)
		require.Len(t, mapped[0].CareTeam, 1)
		assert.Equal(t, "Dr. Smith", mapped[0].CareTeam[0].Name)
	})

	t.Run("unresolved sequences are dropped silently", func(t *testing.T) {
		for _, diagnosis := range mapped[0].Diagnoses {
			assert.NotEqual(t, 7, diagnosis.Sequence)
		}
		for _, member := range mapped[0].CareTeam {
			assert.NotEqual(t, 9, member.Sequence)
		}
	})
}

func TestMapCareTeamDefaults(t *testing.T) {
	members := mapCareTeam([]fhir_dto.EobCareTeam{{Sequence: 3}})
	require.Len(t, members, 1)

	assert.Equal(t, NotProvided, members[0].Name)
	assert.Equal(t, NotProvided, members[0].Role)
	assert.Equal(t, NotProvided, members[0].Qualification)
}

package patients

import (
	"testing"

	"claimbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
)

func TestMapPatientSummary(t *testing.T) {
	t.Run("flattens a full demographic record", func(t *testing.T) {
		summary := MapPatientSummary(&fhir_dto.Patient{
			ResourceType: "Patient",
			ID:           "-20140000008325",
			Name: []fhir_dto.HumanName{
				{Given: []string{"Jane", "Q"}, Family: "Doe"},
			},
			Gender:    "female",
			BirthDate: "1948-09-13",
			Address: []fhir_dto.Address{
				{State: "05", PostalCode: "99999"},
			},
			Extension: []fhir_dto.Extension{
				{
					Url:         extensionURLRace,
					ValueCoding: &fhir_dto.Coding{Code: "1", Display: "White"},
				},
			},
		})

		assert.Equal(t, "-20140000008325", summary.PatientID)
		assert.Equal(t, "Jane", summary.FirstName)
		assert.Equal(t, "Q", summary.MiddleName)
		assert.Equal(t, "Doe", summary.LastName)
		assert.Equal(t, "female", summary.Gender)
		assert.Equal(t, "1948-09-13", summary.BirthDate)
		assert.Equal(t, "99999", summary.PostalCode)
		assert.Equal(t, "05", summary.State)
		assert.Equal(t, "White", summary.Race)
		assert.Equal(t, "No", summary.Deceased)
		assert.Equal(t, "N/A", summary.DeceasedDate)
	})

	t.Run("missing fields fall back to not available", func(t *testing.T) {
		summary := MapPatientSummary(&fhir_dto.Patient{ID: "p-1"})

		assert.Equal(t, "N/A", summary.FirstName)
		assert.Equal(t, "N/A", summary.MiddleName)
		assert.Equal(t, "N/A", summary.LastName)
		assert.Equal(t, "N/A", summary.Gender)
		assert.Equal(t, "N/A", summary.BirthDate)
		assert.Equal(t, "N/A", summary.PostalCode)
		assert.Equal(t, "N/A", summary.State)
		assert.Equal(t, "N/A", summary.Race)
	})

	t.Run("deceased patients carry the date", func(t *testing.T) {
		summary := MapPatientSummary(&fhir_dto.Patient{
			ID:               "p-2",
			DeceasedDateTime: "2020-03-01",
		})

		assert.Equal(t, "Yes", summary.Deceased)
		assert.Equal(t, "2020-03-01", summary.DeceasedDate)
	})

	t.Run("nil patient yields defaults", func(t *testing.T) {
		summary := MapPatientSummary(nil)
		assert.Equal(t, "N/A", summary.PatientID)
	})
}

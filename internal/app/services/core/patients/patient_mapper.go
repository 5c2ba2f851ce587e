package patients

import (
	"claimbridge-service/internal/pkg/dto/responses"
	"claimbridge-service/internal/pkg/fhir_dto"
)

const (
	fieldNotAvailable = "N/A"

	extensionURLRace = "https://bluebutton.cms.gov/resources/variables/race"
)

// MapPatientSummary flattens a provider Patient resource into the
// demographic summary exposed to clinics. Fields the provider withholds
// under _summary search views come back as "N/A".
func MapPatientSummary(patient *fhir_dto.Patient) *responses.PatientSummary {
	summary := &responses.PatientSummary{
		PatientID:    fieldNotAvailable,
		FirstName:    fieldNotAvailable,
		MiddleName:   fieldNotAvailable,
		LastName:     fieldNotAvailable,
		BirthDate:    fieldNotAvailable,
		Gender:       fieldNotAvailable,
		PostalCode:   fieldNotAvailable,
		State:        fieldNotAvailable,
		Race:         fieldNotAvailable,
		Deceased:     "No",
		DeceasedDate: fieldNotAvailable,
	}
	if patient == nil {
		return summary
	}

	if patient.ID != "" {
		summary.PatientID = patient.ID
	}
	if len(patient.Name) > 0 {
		name := patient.Name[0]
		if len(name.Given) > 0 && name.Given[0] != "" {
			summary.FirstName = name.Given[0]
		}
		if len(name.Given) > 1 && name.Given[1] != "" {
			summary.MiddleName = name.Given[1]
		}
		if name.Family != "" {
			summary.LastName = name.Family
		}
	}
	if patient.BirthDate != "" {
		summary.BirthDate = patient.BirthDate
	}
	if patient.Gender != "" {
		summary.Gender = patient.Gender
	}
	if len(patient.Address) > 0 {
		if patient.Address[0].PostalCode != "" {
			summary.PostalCode = patient.Address[0].PostalCode
		}
		if patient.Address[0].State != "" {
			summary.State = patient.Address[0].State
		}
	}
	for _, extension := range patient.Extension {
		if extension.Url == extensionURLRace && extension.ValueCoding != nil && extension.ValueCoding.Display != "" {
			summary.Race = extension.ValueCoding.Display
			break
		}
	}
	if patient.DeceasedDateTime != "" {
		summary.Deceased = "Yes"
		summary.DeceasedDate = patient.DeceasedDateTime
	}
	return summary
}

package responses

type Patient struct {
	PatientID   string `json:"patientId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	HasConsent  bool   `json:"hasConsent"`
	ConsentedAt string `json:"consentedAt,omitempty"`
}

// PatientSummary is the flattened demographic view built from the
// provider's Patient resource. Missing fields carry the N/A marker rather
// than being dropped.
type PatientSummary struct {
	PatientID    string `json:"patientId"`
	FirstName    string `json:"firstname"`
	MiddleName   string `json:"middlename"`
	LastName     string `json:"lastname"`
	BirthDate    string `json:"birthDate"`
	Gender       string `json:"gender"`
	PostalCode   string `json:"postalCode"`
	State        string `json:"state"`
	Race         string `json:"race"`
	Deceased     string `json:"deceased"`
	DeceasedDate string `json:"deceasedDate"`
}

package fhir_dto

type Patient struct {
	ResourceType     string       `json:"resourceType,omitempty"`
	ID               string       `json:"id,omitempty"`
	Meta             *Meta        `json:"meta,omitempty"`
	Identifier       []Identifier `json:"identifier,omitempty"`
	Active           bool         `json:"active,omitempty"`
	Name             []HumanName  `json:"name,omitempty"`
	Gender           string       `json:"gender,omitempty"`
	BirthDate        string       `json:"birthDate,omitempty"`
	DeceasedDateTime string       `json:"deceasedDateTime,omitempty"`
	Address          []Address    `json:"address,omitempty"`
	Extension        []Extension  `json:"extension,omitempty"`
}

package fhir_dto

// ExplanationOfBenefit models the subset of the Blue Button 2.0 EOB
// resource the normalizers read. Everything is optional on the wire.
type ExplanationOfBenefit struct {
	ResourceType   string              `json:"resourceType,omitempty"`
	ID             string              `json:"id,omitempty"`
	Meta           *Meta               `json:"meta,omitempty"`
	Contained      []ContainedResource `json:"contained,omitempty"`
	Extension      []Extension         `json:"extension,omitempty"`
	Identifier     []Identifier        `json:"identifier,omitempty"`
	Status         string              `json:"status,omitempty"`
	Type           *CodeableConcept    `json:"type,omitempty"`
	SubType        *CodeableConcept    `json:"subType,omitempty"`
	Use            string              `json:"use,omitempty"`
	Patient        *Reference          `json:"patient,omitempty"`
	BillablePeriod *Period             `json:"billablePeriod,omitempty"`
	Created        string              `json:"created,omitempty"`
	Insurer        *Reference          `json:"insurer,omitempty"`
	Provider       *Reference          `json:"provider,omitempty"`
	Referral       *Reference          `json:"referral,omitempty"`
	Facility       *Reference          `json:"facility,omitempty"`
	Outcome        string              `json:"outcome,omitempty"`
	CareTeam       []EobCareTeam       `json:"careTeam,omitempty"`
	SupportingInfo []EobSupportingInfo `json:"supportingInfo,omitempty"`
	Diagnosis      []EobDiagnosis      `json:"diagnosis,omitempty"`
	Procedure      []EobProcedure      `json:"procedure,omitempty"`
	Insurance      []EobInsurance      `json:"insurance,omitempty"`
	Item           []EobItem           `json:"item,omitempty"`
	Total          []EobTotal          `json:"total,omitempty"`
	Payment        *EobPayment         `json:"payment,omitempty"`
	BenefitBalance []EobBenefitBalance `json:"benefitBalance,omitempty"`
}

// ContainedResource covers the inline Organization and Observation
// resources Blue Button embeds in EOBs.
type ContainedResource struct {
	ResourceType  string           `json:"resourceType,omitempty"`
	ID            string           `json:"id,omitempty"`
	Active        bool             `json:"active,omitempty"`
	Status        string           `json:"status,omitempty"`
	Name          string           `json:"name,omitempty"`
	Identifier    []Identifier     `json:"identifier,omitempty"`
	Code          *CodeableConcept `json:"code,omitempty"`
	ValueQuantity *Quantity        `json:"valueQuantity,omitempty"`
}

type EobCareTeam struct {
	Sequence      int              `json:"sequence,omitempty"`
	Provider      *Reference       `json:"provider,omitempty"`
	Responsible   bool             `json:"responsible,omitempty"`
	Role          *CodeableConcept `json:"role,omitempty"`
	Qualification *CodeableConcept `json:"qualification,omitempty"`
}

type EobSupportingInfo struct {
	Sequence    int              `json:"sequence,omitempty"`
	Category    *CodeableConcept `json:"category,omitempty"`
	Code        *CodeableConcept `json:"code,omitempty"`
	TimingDate  string           `json:"timingDate,omitempty"`
	ValueString string           `json:"valueString,omitempty"`
}

type EobDiagnosis struct {
	Sequence                 int               `json:"sequence,omitempty"`
	DiagnosisCodeableConcept *CodeableConcept  `json:"diagnosisCodeableConcept,omitempty"`
	Type                     []CodeableConcept `json:"type,omitempty"`
	PackageCode              *CodeableConcept  `json:"packageCode,omitempty"`
}

type EobProcedure struct {
	Sequence                 int              `json:"sequence,omitempty"`
	Date                     string           `json:"date,omitempty"`
	ProcedureCodeableConcept *CodeableConcept `json:"procedureCodeableConcept,omitempty"`
}

type EobInsurance struct {
	Focal    bool       `json:"focal,omitempty"`
	Coverage *Reference `json:"coverage,omitempty"`
}

type EobItem struct {
	Sequence                int               `json:"sequence,omitempty"`
	CareTeamSequence        []int             `json:"careTeamSequence,omitempty"`
	DiagnosisSequence       []int             `json:"diagnosisSequence,omitempty"`
	ProcedureSequence       []int             `json:"procedureSequence,omitempty"`
	InformationSequence     []int             `json:"informationSequence,omitempty"`
	Category                *CodeableConcept  `json:"category,omitempty"`
	ProductOrService        *CodeableConcept  `json:"productOrService,omitempty"`
	Modifier                []CodeableConcept `json:"modifier,omitempty"`
	ServicedDate            string            `json:"servicedDate,omitempty"`
	ServicedPeriod          *Period           `json:"servicedPeriod,omitempty"`
	LocationCodeableConcept *CodeableConcept  `json:"locationCodeableConcept,omitempty"`
	LocationAddress         *Address          `json:"locationAddress,omitempty"`
	Quantity                *Quantity         `json:"quantity,omitempty"`
	Adjudication            []EobAdjudication `json:"adjudication,omitempty"`
	Extension               []Extension       `json:"extension,omitempty"`
}

type EobAdjudication struct {
	Category *CodeableConcept `json:"category,omitempty"`
	Reason   *CodeableConcept `json:"reason,omitempty"`
	Amount   *Money           `json:"amount,omitempty"`
}

type EobTotal struct {
	Category *CodeableConcept `json:"category,omitempty"`
	Amount   *Money           `json:"amount,omitempty"`
}

type EobPayment struct {
	Date   string `json:"date,omitempty"`
	Amount *Money `json:"amount,omitempty"`
}

type EobBenefitBalance struct {
	Category  *CodeableConcept      `json:"category,omitempty"`
	Financial []EobBenefitFinancial `json:"financial,omitempty"`
}

type EobBenefitFinancial struct {
	Type            *CodeableConcept `json:"type,omitempty"`
	UsedUnsignedInt int              `json:"usedUnsignedInt,omitempty"`
	UsedMoney       *Money           `json:"usedMoney,omitempty"`
}

package eob

import (
	"encoding/json"

	"claimbridge-service/internal/pkg/fhir_dto"
)

// NotProvided marks display fields the source resource left empty.
const NotProvided = "NA"

// CategorizedClaims is the bucketed output of a classification pass.
// Empty buckets are omitted from the serialized form.
type CategorizedClaims struct {
	Carrier    []CarrierClaim    `json:"CARRIER,omitempty"`
	Inpatient  []InpatientClaim  `json:"INPATIENT,omitempty"`
	Outpatient []OutpatientClaim `json:"OUTPATIENT,omitempty"`
	PDE        []PDEClaim        `json:"PDE,omitempty"`
	Other      []json.RawMessage `json:"OTHER,omitempty"`
}

// TotalEntries counts entries across every bucket.
func (c *CategorizedClaims) TotalEntries() int {
	return len(c.Carrier) + len(c.Inpatient) + len(c.Outpatient) + len(c.PDE) + len(c.Other)
}

// CodeDisplay is a flattened coding pair.
type CodeDisplay struct {
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type IdentifierInfo struct {
	Types []CodeDisplay `json:"types,omitempty"`
	Value string        `json:"value,omitempty"`
}

// ContainedObservation flattens observation resources inlined in a claim.
type ContainedObservation struct {
	ID     string        `json:"id,omitempty"`
	Status string        `json:"status,omitempty"`
	Codes  []CodeDisplay `json:"codes,omitempty"`
	Value  float64       `json:"value,omitempty"`
}

// ContainedOrganization flattens provider organizations inlined in a claim.
type ContainedOrganization struct {
	ID          string                `json:"id,omitempty"`
	Active      bool                  `json:"active"`
	Name        string                `json:"name,omitempty"`
	Identifiers []fhir_dto.Identifier `json:"identifiers,omitempty"`
}

type CareTeamMember struct {
	Sequence      int           `json:"sequence"`
	Name          string        `json:"name"`
	ProviderID    string        `json:"providerId,omitempty"`
	ProviderTypes []CodeDisplay `json:"providerTypes,omitempty"`
	Role          string        `json:"role"`
	RoleCode      string        `json:"roleCode,omitempty"`
	Qualification string        `json:"qualification"`
}

type Diagnosis struct {
	Sequence int           `json:"sequence"`
	Codes    []CodeDisplay `json:"codes,omitempty"`
	Types    []CodeDisplay `json:"types,omitempty"`
}

type Procedure struct {
	Sequence int           `json:"sequence"`
	Date     string        `json:"date,omitempty"`
	Codes    []CodeDisplay `json:"codes,omitempty"`
}

type SupportingInfoEntry struct {
	Sequence int    `json:"sequence"`
	Category string `json:"category"`
	Code     string `json:"code"`
}

type Referral struct {
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
	Value   string `json:"value,omitempty"`
}

type Adjudication struct {
	Category string  `json:"category,omitempty"`
	Reason   string  `json:"reason,omitempty"`
	Amount   float64 `json:"amount"`
}

// FinancialSummary aggregates adjudicated amounts across every line item.
// Absent categories stay at zero.
type FinancialSummary struct {
	SubmittedAmount   float64 `json:"submittedAmount"`
	AllowedAmount     float64 `json:"allowedAmount"`
	PaidToProvider    float64 `json:"paidToProvider"`
	PaidToPatient     float64 `json:"paidToPatient"`
	NonCoveredAmount  float64 `json:"nonCoveredAmount"`
	DeductibleAmount  float64 `json:"deductibleAmount"`
	CoinsuranceAmount float64 `json:"coinsuranceAmount"`
	CoveredAmount     float64 `json:"coveredAmount"`
}

type Financials struct {
	Summary FinancialSummary `json:"summary"`
}

// LineItem is a claim line with its sequence references resolved into
// embedded diagnosis and care-team records.
type LineItem struct {
	Sequence       int              `json:"sequence"`
	Service        *CodeDisplay     `json:"service,omitempty"`
	Modifiers      []CodeDisplay    `json:"modifiers,omitempty"`
	Quantity       float64          `json:"quantity,omitempty"`
	ServicedDate   string           `json:"servicedDate,omitempty"`
	ServicedPeriod *fhir_dto.Period `json:"servicedPeriod,omitempty"`
	Location       []CodeDisplay    `json:"location,omitempty"`
	State          string           `json:"state,omitempty"`
	Diagnoses      []Diagnosis      `json:"diagnoses,omitempty"`
	CareTeam       []CareTeamMember `json:"careTeam,omitempty"`
	Adjudications  []Adjudication   `json:"adjudications,omitempty"`
}

type SubType struct {
	Code    string `json:"code,omitempty"`
	Display string `json:"display"`
	Text    string `json:"text,omitempty"`
}

type CarrierClaim struct {
	ID             string                 `json:"id"`
	Status         string                 `json:"status,omitempty"`
	Use            string                 `json:"use,omitempty"`
	PatientRef     string                 `json:"patientRef,omitempty"`
	BillablePeriod *fhir_dto.Period       `json:"billablePeriod,omitempty"`
	Created        string                 `json:"created,omitempty"`
	Insurer        string                 `json:"insurer,omitempty"`
	Outcome        string                 `json:"outcome,omitempty"`
	Referral       *Referral              `json:"referral,omitempty"`
	CarrierNumber  string                 `json:"carrierNumber,omitempty"`
	Observations   []ContainedObservation `json:"observations,omitempty"`
	Identifiers    []IdentifierInfo       `json:"identifiers,omitempty"`
	CareTeam       []CareTeamMember       `json:"careTeam,omitempty"`
	Diagnoses      []Diagnosis            `json:"diagnoses,omitempty"`
	Items          []LineItem             `json:"items,omitempty"`
	Financials     Financials             `json:"financials"`
}

type InpatientClaim struct {
	ID                  string                  `json:"id"`
	Status              string                  `json:"status,omitempty"`
	SubType             SubType                 `json:"subType"`
	Use                 string                  `json:"use,omitempty"`
	PatientRef          string                  `json:"patientRef,omitempty"`
	BillablePeriod      *fhir_dto.Period        `json:"billablePeriod,omitempty"`
	Created             string                  `json:"created,omitempty"`
	Insurer             string                  `json:"insurer,omitempty"`
	Outcome             string                  `json:"outcome,omitempty"`
	UtilizationDayCount float64                 `json:"utilizationDayCount,omitempty"`
	Organizations       []ContainedOrganization `json:"organizations,omitempty"`
	Identifiers         []IdentifierInfo        `json:"identifiers,omitempty"`
	CareTeam            []CareTeamMember        `json:"careTeam,omitempty"`
	Diagnoses           []Diagnosis             `json:"diagnoses,omitempty"`
	Procedures          []Procedure             `json:"procedures,omitempty"`
	SupportingInfo      []SupportingInfoEntry   `json:"supportingInfo,omitempty"`
	Items               []LineItem              `json:"items,omitempty"`
	Financials          Financials              `json:"financials"`
}

type OutpatientClaim struct {
	ID             string                  `json:"id"`
	LastUpdated    string                  `json:"lastUpdated,omitempty"`
	Status         string                  `json:"status,omitempty"`
	BillablePeriod *fhir_dto.Period        `json:"billablePeriod,omitempty"`
	Created        string                  `json:"created,omitempty"`
	Organizations  []ContainedOrganization `json:"organizations,omitempty"`
	Identifiers    []IdentifierInfo        `json:"identifiers,omitempty"`
	CareTeam       []CareTeamMember        `json:"careTeam,omitempty"`
	Diagnoses      []Diagnosis             `json:"diagnoses,omitempty"`
	Procedures     []Procedure             `json:"procedures,omitempty"`
	Items          []LineItem              `json:"items,omitempty"`
	Financials     Financials              `json:"financials"`
}

type PDEClaim struct {
	ID             string                `json:"id"`
	LastUpdated    string                `json:"lastUpdated,omitempty"`
	Status         string                `json:"status,omitempty"`
	Created        string                `json:"created,omitempty"`
	BillablePeriod string                `json:"billablePeriod,omitempty"`
	Facility       string                `json:"facility,omitempty"`
	Outcome        string                `json:"outcome,omitempty"`
	PharmacyType   string                `json:"pharmacyType,omitempty"`
	OriginCode     string                `json:"originCode,omitempty"`
	CareTeam       []CareTeamMember      `json:"careTeam,omitempty"`
	SupportingInfo []SupportingInfoEntry `json:"supportingInfo,omitempty"`
	Items          []LineItem            `json:"items,omitempty"`
	Financials     Financials            `json:"financials"`
}

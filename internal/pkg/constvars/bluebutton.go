package constvars

// Blue Button 2.0 resource and code-system identifiers.
const (
	ResourceExplanationOfBenefit = "ExplanationOfBenefit"
	ResourcePatient              = "Patient"
	ResourceCoverage             = "Coverage"
	ResourceBundle               = "Bundle"
	ResourceOrganization         = "Organization"
	ResourceObservation          = "Observation"
	ResourcePractitioner         = "Practitioner"
	ResourcePractitionerRole     = "PractitionerRole"
)

const (
	EobTypeCodingSystem = "https://bluebutton.cms.gov/resources/codesystem/eob-type"

	EobTypeCarrier    = "CARRIER"
	EobTypeInpatient  = "INPATIENT"
	EobTypeOutpatient = "OUTPATIENT"
	EobTypePDE        = "PDE"
	EobTypeOther      = "OTHER"
)

const (
	BundleTypeSearchset = "searchset"
)

// Token endpoint form fields.
const (
	OAuthGrantTypeAuthorizationCode = "authorization_code"
	OAuthGrantTypeRefreshToken      = "refresh_token"
	OAuthResponseTypeCode           = "code"
	OAuthCodeChallengeMethodS256    = "S256"
)

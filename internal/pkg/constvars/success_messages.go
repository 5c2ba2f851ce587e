package constvars

const (
	ClinicCreatedSuccess         = "Clinic registered successfully"
	LoginSuccess                 = "Login successfully"
	LogoutSuccess                = "Logout successfully"
	PatientCreatedSuccess        = "Patient added successfully"
	GetPatientsSuccess           = "Patients fetched successfully"
	GetPatientSummarySuccess     = "Patient summary fetched successfully"
	ConsentInitiatedSuccess      = "Authorization flow initiated successfully"
	GetClaimsSuccess             = "Claims fetched successfully"
	GetCoverageSuccess           = "Coverage fetched successfully"
	GetCodeDescriptionSuccess    = "Code description fetched successfully"
)

package responses

type ClinicSignup struct {
	ClinicID string `json:"clinicId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type ClinicLogin struct {
	Token string `json:"token"`
}

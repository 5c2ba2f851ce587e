package responses

type CodeDescription struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

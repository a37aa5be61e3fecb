package models

// CompanyProfile is the business identity and branding printed on every memo.
// At most one profile exists at a time; saving replaces it wholesale.
type CompanyProfile struct {
	Name         string `json:"name" binding:"required"`
	MemoTitle    string `json:"memoTitle"`
	MemoSubTitle string `json:"memoSubTitle"`
	Description  string `json:"description"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PrimaryColor string `json:"primaryColor"` // hex accent color, e.g. #4f46e5
	Logo         string `json:"logo"`         // optional base64 data URI
}

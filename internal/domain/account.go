package domain

type Profile struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	City        string `json:"city,omitempty"`
}

// PaymentMethod values are the store API's wire names.
type PaymentMethod string

const (
	PaymentVisa PaymentMethod = "Visa"
	PaymentCash PaymentMethod = "Cash"
)

type PaymentResult struct {
	RedirectURL string
	Message     string
}

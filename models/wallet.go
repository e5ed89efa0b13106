package models

const (
	PaymentPending  = "Pending"
	PaymentApproved = "Approved"
	PaymentFailed   = "Failed"
)

func IsTerminalPaymentStatus(status string) bool {
	return status == PaymentApproved || status == PaymentFailed
}

type WalletTransaction struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // credit, debit
	Status      string  `json:"status"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// TopUp is the backend's answer to a top-up request; PaymentURL is opened in
// the device browser.
type TopUp struct {
	PaymentID  string  `json:"paymentId"`
	PaymentURL string  `json:"paymentUrl"`
	Amount     float64 `json:"amount"`
}

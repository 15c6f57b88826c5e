package domain

const (
	MailTypeCreateUser  = "create_user"
	MailTypeClaimStatus = "claim_status"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type ClaimStatusMailData struct {
	FullName    string  `json:"fullName"`
	ClaimID     int64   `json:"claimID"`
	Month       string  `json:"month"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	DecidedBy   string  `json:"decidedBy"`
}

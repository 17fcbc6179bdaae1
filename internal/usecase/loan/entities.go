package loan

import (
	"time"

	"loanledger-backend/pkg/money"
)

type ApplyInput struct {
	BorrowerID     string
	Principal      money.Amount
	InterestRate   float64
	DurationMonths int
	Purpose        string
	StartDate      time.Time
	// DueDate may be zero; it then defaults to StartDate + DurationMonths.
	DueDate time.Time
}

type LoanDTO struct {
	LoanID         string       `json:"loan_id"`
	BorrowerID     string       `json:"borrower_id"`
	Principal      money.Amount `json:"principal"`
	InterestRate   float64      `json:"interest_rate"`
	DurationMonths int          `json:"duration_months"`
	Purpose        string       `json:"purpose"`
	StartDate      string       `json:"start_date"`
	DueDate        string       `json:"due_date"`
	Status         string       `json:"status"`
	Balance        money.Amount `json:"balance"`
	TotalPayable   money.Amount `json:"total_payable"`
	Archived       bool         `json:"archived"`
	ApprovedBy     string       `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time   `json:"approved_at,omitempty"`
	Overdue        bool         `json:"overdue"`
	CreatedAt      time.Time    `json:"created_at"`
}

package repayment

import (
	"time"

	domain "loanledger-backend/internal/domain/repayment"
	"loanledger-backend/pkg/money"
)

type RecordInput struct {
	BorrowerID  string
	LoanID      string // public 32-hex loan id
	Amount      money.Amount
	PaymentDate time.Time
	Method      domain.Method
}

type RepaymentDTO struct {
	RepaymentID string       `json:"repayment_id"`
	LoanID      string       `json:"loan_id"`
	Amount      money.Amount `json:"amount"`
	PaymentDate string       `json:"payment_date"`
	Method      string       `json:"method"`
	Status      string       `json:"status"`
	ApprovedBy  string       `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time   `json:"approved_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ApproveResult pairs the approved repayment with the loan it settled into.
type ApproveResult struct {
	Repayment   RepaymentDTO `json:"repayment"`
	LoanID      string       `json:"loan_id"`
	LoanBalance money.Amount `json:"loan_balance"`
	LoanStatus  string       `json:"loan_status"`
}

// DetailDTO is the admin listing row, denormalized with loan + borrower.
type DetailDTO struct {
	RepaymentDTO
	BorrowerID    string `json:"borrower_id"`
	BorrowerName  string `json:"borrower_name"`
	BorrowerEmail string `json:"borrower_email"`
}

type ListFilter struct {
	SearchTerm string
	Status     domain.Status
	Offset     int
	Limit      int
}

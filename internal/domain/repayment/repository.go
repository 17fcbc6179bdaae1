package repayment

import "context"

// ListFilter narrows repayment listings. SearchTerm is matched as a
// substring against borrower name, email and payment method by the store.
type ListFilter struct {
	LoanID     uint64
	Status     Status
	SearchTerm string
	Offset     int
	Limit      int
}

// Detail is a repayment denormalized with loan + borrower for admin views.
type Detail struct {
	Repayment
	LoanPublicID  string `json:"loan_id"`
	BorrowerID    string `json:"borrower_id"`
	BorrowerName  string `json:"borrower_name"`
	BorrowerEmail string `json:"borrower_email"`
}

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	// GetByRepaymentIDForUpdate locks the row within the enclosing tx.
	GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*Repayment, error)
	Save(ctx context.Context, r *Repayment) error
	List(ctx context.Context, f ListFilter) ([]Detail, error)
	// SumApprovedByLoan returns total approved repayment minor units for a loan.
	SumApprovedByLoan(ctx context.Context, loanID uint64) (int64, error)
	// SumApproved returns total approved repayment minor units across the book.
	SumApproved(ctx context.Context) (int64, error)
}

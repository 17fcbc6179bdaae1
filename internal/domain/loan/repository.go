package loan

import "context"

// ListFilter narrows loan listings. Zero values mean "no filter".
type ListFilter struct {
	BorrowerID string
	Status     Status
	Archived   *bool
	Offset     int
	Limit      int
}

// Totals is the aggregate slice of the book the dashboard shows.
type Totals struct {
	CountByStatus    map[Status]int64
	PrincipalTotal   int64
	OutstandingTotal int64
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the duration of the enclosing tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetByIDForUpdate locks by numeric PK; used when following a repayment FK.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// Save persists l and bumps its version; returns ErrConflict when the
	// stored version no longer matches.
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan, deletedBy string) error
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	Count(ctx context.Context, f ListFilter) (int64, error)
	Totals(ctx context.Context, borrowerID string) (*Totals, error)
}

package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "loanledger-backend/internal/domain/loan"
	"loanledger-backend/internal/domain/uow"
	"loanledger-backend/pkg/datemath"
	"loanledger-backend/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

// Apply creates a pending loan with balance equal to the principal.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if in.BorrowerID == "" || len(in.BorrowerID) != 32 {
		return nil, fmt.Errorf("%w: borrower id", domain.ErrValidation)
	}
	if in.Principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", domain.ErrValidation)
	}
	if in.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	if in.InterestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate must not be negative", domain.ErrValidation)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date required", domain.ErrValidation)
	}
	due := in.DueDate
	if due.IsZero() {
		due = datemath.AddMonths(in.StartDate, in.DurationMonths)
	}
	if !due.After(in.StartDate) {
		return nil, fmt.Errorf("%w: due date must be after start date", domain.ErrValidation)
	}

	// Block a second application while one is still pending.
	existing, err := u.repo.List(ctx, domain.ListFilter{
		BorrowerID: in.BorrowerID,
		Status:     domain.StatusPending,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: borrower already has a pending loan %s",
			domain.ErrInvalidState, existing[0].LoanID)
	}

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		BorrowerID:      in.BorrowerID,
		Principal:       in.Principal,
		InterestRate:    in.InterestRate,
		DurationMonths:  in.DurationMonths,
		Purpose:         in.Purpose,
		StartDate:       in.StartDate.UTC(),
		DueDate:         due.UTC(),
		Status:          domain.StatusPending,
		Balance:         in.Principal,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l, time.Now().UTC()), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l, time.Now().UTC()), nil
}

// ListForBorrower returns the borrower's loans, optionally narrowed by status.
func (u *Usecase) ListForBorrower(ctx context.Context, borrowerID string, status domain.Status, offset, limit int) ([]LoanDTO, error) {
	return u.list(ctx, domain.ListFilter{
		BorrowerID: borrowerID,
		Status:     status,
		Offset:     offset,
		Limit:      limit,
	})
}

// ListByStatus backs the admin pending/approved/rejected pages. archived
// narrows fully-paid listings to the archived or unarchived half.
func (u *Usecase) ListByStatus(ctx context.Context, status domain.Status, archived *bool, offset, limit int) ([]LoanDTO, error) {
	return u.list(ctx, domain.ListFilter{
		Status:   status,
		Archived: archived,
		Offset:   offset,
		Limit:    limit,
	})
}

func (u *Usecase) list(ctx context.Context, f domain.ListFilter) ([]LoanDTO, error) {
	loans, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i], now))
	}
	return out, nil
}

// Delete soft-deletes a rejected loan. Any other status is InvalidState.
func (u *Usecase) Delete(ctx context.Context, loanID, adminID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusRejected {
			return fmt.Errorf("%w: only rejected loans may be deleted", domain.ErrInvalidState)
		}
		return r.Loans.Delete(ctx, l, adminID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func toDTO(l *domain.Loan, now time.Time) *LoanDTO {
	overdue := l.Status == domain.StatusApproved && datemath.IsOverdue(l.DueDate, now)
	return &LoanDTO{
		LoanID:         l.LoanID,
		BorrowerID:     l.BorrowerID,
		Principal:      l.Principal,
		InterestRate:   l.InterestRate,
		DurationMonths: l.DurationMonths,
		Purpose:        l.Purpose,
		StartDate:      l.StartDate.Format(datemath.DateLayout),
		DueDate:        l.DueDate.Format(datemath.DateLayout),
		Status:         string(l.Status),
		Balance:        l.Balance,
		TotalPayable:   l.TotalPayable(),
		Archived:       l.Archived,
		ApprovedBy:     l.ApprovedBy,
		ApprovedAt:     l.ApprovedAt,
		Overdue:        overdue,
		CreatedAt:      l.CreatedAt,
	}
}

package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "loanledger-backend/internal/domain/loan"
	"loanledger-backend/internal/domain/uow"
	loanUC "loanledger-backend/internal/usecase/loan"
	"loanledger-backend/pkg/datemath"
)

// Usecase drives loan status transitions. All mutations run under the loan
// row lock, and a version conflict is retried once after re-reading.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Approve moves pending→approved, or rejected→approved (reapprove).
// Approving an already-approved loan is an idempotent no-op: the loan is
// returned unchanged, approver and timestamp untouched.
func (u *Usecase) Approve(ctx context.Context, loanID, adminID string) (*loanUC.LoanDTO, error) {
	return u.mutate(ctx, loanID, func(l *domain.Loan) (bool, error) {
		if l.Status == domain.StatusApproved {
			return false, nil
		}
		if l.Archived {
			return false, fmt.Errorf("%w: loan is archived", domain.ErrInvalidTransition)
		}
		if !domain.CanTransition(l.Status, domain.StatusApproved) {
			return false, fmt.Errorf("%w: %s -> approved", domain.ErrInvalidTransition, l.Status)
		}
		now := time.Now().UTC()
		l.Status = domain.StatusApproved
		l.ApprovedBy = adminID
		l.ApprovedAt = &now
		l.StatusUpdatedAt = now
		return true, nil
	})
}

// Reject moves pending→rejected, or approved→rejected (cancel approval).
// Rejecting an already-rejected loan is an idempotent no-op.
func (u *Usecase) Reject(ctx context.Context, loanID, adminID string) (*loanUC.LoanDTO, error) {
	_ = adminID
	return u.mutate(ctx, loanID, func(l *domain.Loan) (bool, error) {
		if l.Status == domain.StatusRejected {
			return false, nil
		}
		if l.Archived {
			return false, fmt.Errorf("%w: loan is archived", domain.ErrInvalidTransition)
		}
		if !domain.CanTransition(l.Status, domain.StatusRejected) {
			return false, fmt.Errorf("%w: %s -> rejected", domain.ErrInvalidTransition, l.Status)
		}
		l.Status = domain.StatusRejected
		l.StatusUpdatedAt = time.Now().UTC()
		return true, nil
	})
}

// Archive hides a fully-paid loan from default views. Status and balance are
// untouched; only the visibility flag changes.
func (u *Usecase) Archive(ctx context.Context, loanID string) (*loanUC.LoanDTO, error) {
	return u.mutate(ctx, loanID, func(l *domain.Loan) (bool, error) {
		if !domain.Archivable(l.Status) {
			return false, fmt.Errorf("%w: only fully paid loans may be archived", domain.ErrInvalidState)
		}
		if l.Archived {
			return false, nil
		}
		l.Archived = true
		return true, nil
	})
}

func (u *Usecase) Unarchive(ctx context.Context, loanID string) (*loanUC.LoanDTO, error) {
	return u.mutate(ctx, loanID, func(l *domain.Loan) (bool, error) {
		if !l.Archived {
			return false, fmt.Errorf("%w: loan is not archived", domain.ErrInvalidState)
		}
		l.Archived = false
		return true, nil
	})
}

// mutate applies fn to the locked loan row, saving only when fn reports a
// change. A save-time version conflict gets one retry with fresh state.
func (u *Usecase) mutate(ctx context.Context, loanID string, fn func(l *domain.Loan) (bool, error)) (*loanUC.LoanDTO, error) {
	var dto *loanUC.LoanDTO
	run := func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
			changed, err := fn(l)
			if err != nil {
				return err
			}
			if changed {
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
			}
			dto = toDTO(l)
			return nil
		})
	}

	err := run()
	if errors.Is(err, domain.ErrConflict) {
		err = run()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func toDTO(l *domain.Loan) *loanUC.LoanDTO {
	now := time.Now().UTC()
	return &loanUC.LoanDTO{
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
		Overdue:        l.Status == domain.StatusApproved && datemath.IsOverdue(l.DueDate, now),
		CreatedAt:      l.CreatedAt,
	}
}

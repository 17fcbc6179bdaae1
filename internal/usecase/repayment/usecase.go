package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	loanDomain "loanledger-backend/internal/domain/loan"
	domain "loanledger-backend/internal/domain/repayment"
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

// Record submits a repayment against the borrower's own approved loan. The
// repayment starts pending; the balance moves only when an admin approves it.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RepaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if !domain.ValidMethod(in.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.Method)
	}
	if in.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date required", domain.ErrValidation)
	}

	var dto *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		// A borrower cannot pay someone else's loan; hide its existence.
		if in.BorrowerID != "" && l.BorrowerID != in.BorrowerID {
			return loanDomain.ErrNotFound
		}
		if l.Status != loanDomain.StatusApproved {
			return fmt.Errorf("%w: loan is %s, repayments need an approved loan",
				loanDomain.ErrInvalidState, l.Status)
		}
		if in.Amount.GreaterThan(l.Balance) {
			return fmt.Errorf("%w: amount %s exceeds balance %s",
				domain.ErrOverpayment, in.Amount, l.Balance)
		}

		p := &domain.Repayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.ID,
			Amount:      in.Amount,
			PaymentDate: in.PaymentDate.UTC(),
			Method:      in.Method,
			Status:      domain.StatusPending,
		}
		if err := r.Repayments.Create(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p, l.LoanID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Approve marks the repayment approved and applies it to the loan balance in
// the same transaction. The balance is re-read under the row lock, so a
// concurrent approval that shrank it in the meantime just clamps this one at
// zero; the loan flips to fully_paid when the balance reaches zero.
func (u *Usecase) Approve(ctx context.Context, repaymentID, adminID string) (*ApproveResult, error) {
	var out *ApproveResult
	run := func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			p, err := r.Repayments.GetByRepaymentIDForUpdate(ctx, repaymentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrNotFound
				}
				return err
			}
			if p.Status == domain.StatusApproved {
				return domain.ErrAlreadyApproved
			}

			l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanID)
			if err != nil {
				return err
			}
			if l.Status != loanDomain.StatusApproved {
				return fmt.Errorf("%w: loan is %s", loanDomain.ErrInvalidState, l.Status)
			}

			now := time.Now().UTC()
			p.Status = domain.StatusApproved
			p.ApprovedBy = adminID
			p.ApprovedAt = &now

			l.Balance = l.Balance.Sub(p.Amount) // clamps at zero
			if l.Balance.IsZero() {
				l.Status = loanDomain.StatusFullyPaid
				l.StatusUpdatedAt = now
			}

			if err := r.Repayments.Save(ctx, p); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			out = &ApproveResult{
				Repayment:   *toDTO(p, l.LoanID),
				LoanID:      l.LoanID,
				LoanBalance: l.Balance,
				LoanStatus:  string(l.Status),
			}
			return nil
		})
	}

	err := run()
	if errors.Is(err, loanDomain.ErrConflict) {
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List is the admin repayments view: substring search over borrower
// name/email/method, exact status filter, denormalized rows.
func (u *Usecase) List(ctx context.Context, f ListFilter) ([]DetailDTO, error) {
	rows, err := u.repo.List(ctx, domain.ListFilter{
		Status:     f.Status,
		SearchTerm: f.SearchTerm,
		Offset:     f.Offset,
		Limit:      f.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]DetailDTO, 0, len(rows))
	for i := range rows {
		out = append(out, DetailDTO{
			RepaymentDTO:  *toDTO(&rows[i].Repayment, rows[i].LoanPublicID),
			BorrowerID:    rows[i].BorrowerID,
			BorrowerName:  rows[i].BorrowerName,
			BorrowerEmail: rows[i].BorrowerEmail,
		})
	}
	return out, nil
}

// ListForLoan returns repayments of one loan for the borrower's detail view.
func (u *Usecase) ListForLoan(ctx context.Context, loanNumericID uint64) ([]DetailDTO, error) {
	rows, err := u.repo.List(ctx, domain.ListFilter{LoanID: loanNumericID})
	if err != nil {
		return nil, err
	}
	out := make([]DetailDTO, 0, len(rows))
	for i := range rows {
		out = append(out, DetailDTO{
			RepaymentDTO: *toDTO(&rows[i].Repayment, rows[i].LoanPublicID),
			BorrowerID:   rows[i].BorrowerID,
			BorrowerName: rows[i].BorrowerName,
		})
	}
	return out, nil
}

func toDTO(p *domain.Repayment, loanPublicID string) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID: p.RepaymentID,
		LoanID:      loanPublicID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(datemath.DateLayout),
		Method:      string(p.Method),
		Status:      string(p.Status),
		ApprovedBy:  p.ApprovedBy,
		ApprovedAt:  p.ApprovedAt,
		CreatedAt:   p.CreatedAt,
	}
}

package uow

import (
	"context"

	"loanledger-backend/internal/domain/loan"
	"loanledger-backend/internal/domain/repayment"
	"loanledger-backend/internal/domain/user"
)

type Repos struct {
	Loans      loan.Repository
	Repayments repayment.Repository
	Users      user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

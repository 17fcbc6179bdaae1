package repaymentmock

import (
	"context"
	"errors"

	domain "loanledger-backend/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("repaymentmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, p *domain.Repayment) error
	GetByRepaymentIDFn          func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	GetByRepaymentIDForUpdateFn func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	SaveFn                      func(ctx context.Context, p *domain.Repayment) error
	ListFn                      func(ctx context.Context, f domain.ListFilter) ([]domain.Detail, error)
	SumApprovedByLoanFn         func(ctx context.Context, loanID uint64) (int64, error)
	SumApprovedFn               func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDForUpdateFn != nil {
		return m.GetByRepaymentIDForUpdateFn(ctx, repaymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, p *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Detail, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) SumApprovedByLoan(ctx context.Context, loanID uint64) (int64, error) {
	if m.SumApprovedByLoanFn != nil {
		return m.SumApprovedByLoanFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) SumApproved(ctx context.Context) (int64, error) {
	if m.SumApprovedFn != nil {
		return m.SumApprovedFn(ctx)
	}
	return 0, nil
}

package repaymentmock

import (
	"context"
	"errors"
	"testing"

	domain "loanledger-backend/internal/domain/repayment"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	r := &domain.Repayment{RepaymentID: "aaaa"}

	wantErr := errors.New("boom")
	called := false
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Repayment) error {
			called = true
			if got != r {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, r); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	m = &Repo{}
	if err := m.Create(ctx, r); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByRepaymentIDForUpdate(t *testing.T) {
	ctx := context.Background()
	want := &domain.Repayment{RepaymentID: "bbbb"}

	m := &Repo{
		GetByRepaymentIDForUpdateFn: func(gotCtx context.Context, id string) (*domain.Repayment, error) {
			if id != "bbbb" {
				t.Fatalf("id mismatch: got %s", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByRepaymentIDForUpdate(ctx, "bbbb")
	if err != nil || got != want {
		t.Fatalf("GetByRepaymentIDForUpdate: got %+v, %v", got, err)
	}

	m = &Repo{}
	if _, err := m.GetByRepaymentIDForUpdate(ctx, "bbbb"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("default: want errUnimplemented, got %v", err)
	}
}

func TestRepo_SumApproved(t *testing.T) {
	ctx := context.Background()

	m := &Repo{
		SumApprovedFn:       func(context.Context) (int64, error) { return 65_000, nil },
		SumApprovedByLoanFn: func(gotCtx context.Context, loanID uint64) (int64, error) { return 25_000, nil },
	}
	if total, err := m.SumApproved(ctx); err != nil || total != 65_000 {
		t.Fatalf("SumApproved: got %d, %v", total, err)
	}
	if total, err := m.SumApprovedByLoan(ctx, 7); err != nil || total != 25_000 {
		t.Fatalf("SumApprovedByLoan: got %d, %v", total, err)
	}

	// Defaults report an empty book
	m = &Repo{}
	if total, err := m.SumApproved(ctx); err != nil || total != 0 {
		t.Fatalf("SumApproved default: got %d, %v", total, err)
	}
}

func TestRepo_SaveAndListDefaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Save(ctx, &domain.Repayment{}); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
	rows, err := m.List(ctx, domain.ListFilter{})
	if err != nil || rows != nil {
		t.Fatalf("List default: got %v, %v", rows, err)
	}
}

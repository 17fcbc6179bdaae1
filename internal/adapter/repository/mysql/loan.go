package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loanledger-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save writes all columns and bumps the version; a stale version means a
// concurrent writer got there first and surfaces as ErrConflict.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	prev := l.Version
	l.Version = prev + 1
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND version = ?", l.ID, prev).
		Select("*").Omit("id", "created_at").
		Updates(l)
	if res.Error != nil {
		l.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		l.Version = prev
		return loanDomain.ErrConflict
	}
	return nil
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock; only meaningful inside a transaction.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(l).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(l).Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.applyFilter(r.db.WithContext(ctx).Model(&loanDomain.Loan{}), f).
		Order("created_at ASC, id ASC").
		Offset(f.Offset).
		Limit(limitOrAll(f.Limit)).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Count(ctx context.Context, f loanDomain.ListFilter) (int64, error) {
	var n int64
	res := r.applyFilter(r.db.WithContext(ctx).Model(&loanDomain.Loan{}), f).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) Totals(ctx context.Context, borrowerID string) (*loanDomain.Totals, error) {
	type row struct {
		Status    loanDomain.Status
		N         int64
		Principal int64
		Balance   int64
	}
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS n, COALESCE(SUM(principal),0) AS principal, COALESCE(SUM(balance),0) AS balance").
		Group("status")
	if borrowerID != "" {
		q = q.Where("borrower_id = ?", borrowerID)
	}
	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	t := &loanDomain.Totals{CountByStatus: make(map[loanDomain.Status]int64, len(rows))}
	for _, r := range rows {
		t.CountByStatus[r.Status] = r.N
		t.PrincipalTotal += r.Principal
		t.OutstandingTotal += r.Balance
	}
	return t, nil
}

func (r *LoanRepository) applyFilter(q *gorm.DB, f loanDomain.ListFilter) *gorm.DB {
	if f.BorrowerID != "" {
		q = q.Where("borrower_id = ?", f.BorrowerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Archived != nil {
		q = q.Where("archived = ?", *f.Archived)
	}
	return q
}

func limitOrAll(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

// forUpdate adds a row lock on dialects that support it. SQLite (used by the
// in-memory tests) has no FOR UPDATE grammar; its single writer serializes
// transactions anyway.
func forUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

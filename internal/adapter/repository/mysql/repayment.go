package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	repaymentDomain "loanledger-backend/internal/domain/repayment"
	"loanledger-backend/pkg/money"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, p *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, p *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repaymentDomain.Repayment, error) {
	var out repaymentDomain.Repayment
	res := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*repaymentDomain.Repayment, error) {
	var out repaymentDomain.Repayment
	res := forUpdate(r.db.WithContext(ctx)).
		Where("repayment_id = ?", repaymentID).
		First(&out)
	return &out, res.Error
}

// detailRow is a flat scan target; gorm does not map joined columns onto the
// embedded Repayment, so we assemble the Detail by hand.
type detailRow struct {
	ID            uint64
	RepaymentID   string
	LoanID        uint64
	Amount        int64
	PaymentDate   time.Time
	Method        repaymentDomain.Method
	Status        repaymentDomain.Status
	ApprovedBy    string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LoanPublicID  string
	BorrowerID    string
	BorrowerName  string
	BorrowerEmail string
}

func (r *RepaymentRepository) List(ctx context.Context, f repaymentDomain.ListFilter) ([]repaymentDomain.Detail, error) {
	q := r.db.WithContext(ctx).Table("repayments").
		Select("repayments.id, repayments.repayment_id, repayments.loan_id, repayments.amount, " +
			"repayments.payment_date, repayments.method, repayments.status, repayments.approved_by, " +
			"repayments.approved_at, repayments.created_at, repayments.updated_at, " +
			"loans.loan_id AS loan_public_id, users.user_id AS borrower_id, " +
			"users.name AS borrower_name, users.email AS borrower_email").
		Joins("JOIN loans ON loans.id = repayments.loan_id").
		Joins("JOIN users ON users.user_id = loans.borrower_id").
		Where("repayments.deleted_at IS NULL")

	if f.LoanID != 0 {
		q = q.Where("repayments.loan_id = ?", f.LoanID)
	}
	if f.Status != "" {
		q = q.Where("repayments.status = ?", f.Status)
	}
	if f.SearchTerm != "" {
		term := "%" + f.SearchTerm + "%"
		q = q.Where("users.name LIKE ? OR users.email LIKE ? OR repayments.method LIKE ?", term, term, term)
	}

	var rows []detailRow
	res := q.Order("repayments.created_at ASC, repayments.id ASC").
		Offset(f.Offset).
		Limit(limitOrAll(f.Limit)).
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}

	out := make([]repaymentDomain.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, repaymentDomain.Detail{
			Repayment: repaymentDomain.Repayment{
				ID:          row.ID,
				RepaymentID: row.RepaymentID,
				LoanID:      row.LoanID,
				Amount:      money.Amount(row.Amount),
				PaymentDate: row.PaymentDate,
				Method:      row.Method,
				Status:      row.Status,
				ApprovedBy:  row.ApprovedBy,
				ApprovedAt:  row.ApprovedAt,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			LoanPublicID:  row.LoanPublicID,
			BorrowerID:    row.BorrowerID,
			BorrowerName:  row.BorrowerName,
			BorrowerEmail: row.BorrowerEmail,
		})
	}
	return out, nil
}

func (r *RepaymentRepository) SumApprovedByLoan(ctx context.Context, loanID uint64) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).Model(&repaymentDomain.Repayment{}).
		Select("COALESCE(SUM(amount),0)").
		Where("loan_id = ? AND status = ?", loanID, repaymentDomain.StatusApproved).
		Scan(&sum)
	return sum, res.Error
}

func (r *RepaymentRepository) SumApproved(ctx context.Context) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).Model(&repaymentDomain.Repayment{}).
		Select("COALESCE(SUM(amount),0)").
		Where("status = ?", repaymentDomain.StatusApproved).
		Scan(&sum)
	return sum, res.Error
}

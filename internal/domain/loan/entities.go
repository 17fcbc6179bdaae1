package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loanledger-backend/pkg/money"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrValidation        = errors.New("invalid loan input")
	ErrInvalidState      = errors.New("operation not allowed in current loan state")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrConflict          = errors.New("loan was modified concurrently")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusFullyPaid Status = "fully_paid"
)

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal       money.Amount   `gorm:"type:bigint" json:"principal"`
	InterestRate    float64        `gorm:"type:decimal(6,2)" json:"interest_rate"`
	DurationMonths  int            `gorm:"type:int" json:"duration_months"`
	Purpose         string         `gorm:"type:text" json:"purpose"`
	StartDate       time.Time      `gorm:"type:date" json:"start_date"`
	DueDate         time.Time      `gorm:"type:date" json:"due_date"`
	Status          Status         `gorm:"type:enum('pending','approved','rejected','fully_paid');default:'pending'" json:"status"`
	Balance         money.Amount   `gorm:"type:bigint" json:"balance"`
	Archived        bool           `gorm:"default:false" json:"archived"`
	ApprovedBy      string         `gorm:"size:32" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	Version         uint           `gorm:"default:0" json:"-"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// TotalPayable is principal plus upfront simple interest. Shown to the
// borrower for information; repayments retire the principal balance only.
func (l *Loan) TotalPayable() money.Amount {
	return money.TotalPayable(l.Principal, l.InterestRate)
}

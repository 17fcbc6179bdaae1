package repayment

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loanledger-backend/pkg/money"
)

var (
	ErrNotFound        = errors.New("repayment not found")
	ErrValidation      = errors.New("invalid repayment input")
	ErrAlreadyApproved = errors.New("repayment already approved")
	ErrOverpayment     = errors.New("repayment exceeds outstanding balance")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodMobileMoney  Method = "mobile_money"
)

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney:
		return true
	}
	return false
}

type Repayment struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RepaymentID string         `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_repayments_repayment_id_active" json:"repayment_id"`
	// FK to loans.id (numeric); the public loan id travels in DTOs only.
	LoanID      uint64         `gorm:"column:loan_id;not null;index" json:"-"`
	Amount      money.Amount   `gorm:"column:amount;type:bigint;not null" json:"amount"`
	PaymentDate time.Time      `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	Method      Method         `gorm:"column:method;type:enum('cash','bank_transfer','mobile_money');not null" json:"method"`
	Status      Status         `gorm:"column:status;type:enum('pending','approved');default:'pending'" json:"status"`
	ApprovedBy  string         `gorm:"column:approved_by;size:32" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }

package user

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loanledger-backend/pkg/money"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrValidation     = errors.New("invalid user input")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID          string         `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name            string         `gorm:"column:name;size:191;not null" json:"name"`
	Email           string         `gorm:"column:email;size:191;not null;uniqueIndex:ux_users_email_active" json:"email"`
	PasswordHash    string         `gorm:"column:password_hash;size:191;not null" json:"-"`
	Phone           string         `gorm:"column:phone;size:32" json:"phone"`
	Address         string         `gorm:"column:address;type:text" json:"address"`
	Employment      string         `gorm:"column:employment;size:191" json:"employment"`
	MonthlyIncome   money.Amount   `gorm:"column:monthly_income;type:bigint" json:"monthly_income"`
	Identification  string         `gorm:"column:identification;size:64" json:"identification"`
	NextOfKin       string         `gorm:"column:next_of_kin;size:191" json:"next_of_kin"`
	Role            Role           `gorm:"column:role;type:enum('user','admin');default:'user'" json:"role"`
	ProfileComplete bool           `gorm:"column:profile_complete;default:false" json:"profile_complete"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }

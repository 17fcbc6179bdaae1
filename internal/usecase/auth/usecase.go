package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "loanledger-backend/internal/domain/user"
	"loanledger-backend/pkg/id"
	"loanledger-backend/pkg/money"
)

type Usecase struct {
	users      domain.Repository
	sessions   SessionStore
	sessionTTL time.Duration
	bcryptCost int
}

func NewUsecase(users domain.Repository, sessions SessionStore, sessionTTL time.Duration, bcryptCost int) *Usecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Usecase{users: users, sessions: sessions, sessionTTL: sessionTTL, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserDTO struct {
	UserID          string       `json:"user_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone,omitempty"`
	Address         string       `json:"address,omitempty"`
	Employment      string       `json:"employment,omitempty"`
	MonthlyIncome   money.Amount `json:"monthly_income"`
	Identification  string       `json:"identification,omitempty"`
	NextOfKin       string       `json:"next_of_kin,omitempty"`
	Role            string       `json:"role"`
	ProfileComplete bool         `json:"profile_complete"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Register creates a borrower account. Admin accounts are created by an
// admin through the user-management usecase, never self-service.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	if _, err := u.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, err
	}
	usr := &domain.User{
		UserID:       id.NewID32(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return ToUserDTO(usr), nil
}

// Login verifies credentials and opens a session. requireAdmin guards the
// separate admin login endpoint: a borrower credential is rejected there.
func (u *Usecase) Login(ctx context.Context, email, password string, requireAdmin bool) (*Session, *UserDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrBadCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrBadCredentials
	}
	if requireAdmin && usr.Role != domain.RoleAdmin {
		return nil, nil, domain.ErrBadCredentials
	}

	s := Session{
		Token:     id.NewID32(),
		UserID:    usr.UserID,
		Role:      usr.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.sessions.Create(ctx, s, u.sessionTTL); err != nil {
		return nil, nil, err
	}
	return &s, ToUserDTO(usr), nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Delete(ctx, token)
}

// Resolve maps a session token to its session; used by the auth middleware.
func (u *Usecase) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return u.sessions.Get(ctx, token)
}

func (u *Usecase) CurrentUser(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ToUserDTO(usr), nil
}

type ProfileInput struct {
	Phone          string
	Address        string
	Employment     string
	MonthlyIncome  money.Amount
	Identification string
	NextOfKin      string
}

// CompleteProfile fills in the borrower detail the loan officer reviews.
// The profile-complete flag flips once every field is present.
func (u *Usecase) CompleteProfile(ctx context.Context, userID string, in ProfileInput) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	usr.Phone = in.Phone
	usr.Address = in.Address
	usr.Employment = in.Employment
	usr.MonthlyIncome = in.MonthlyIncome
	usr.Identification = in.Identification
	usr.NextOfKin = in.NextOfKin
	usr.ProfileComplete = in.Phone != "" && in.Address != "" && in.Employment != "" &&
		in.Identification != "" && in.NextOfKin != ""

	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return ToUserDTO(usr), nil
}

func ToUserDTO(usr *domain.User) *UserDTO {
	return &UserDTO{
		UserID:          usr.UserID,
		Name:            usr.Name,
		Email:           usr.Email,
		Phone:           usr.Phone,
		Address:         usr.Address,
		Employment:      usr.Employment,
		MonthlyIncome:   usr.MonthlyIncome,
		Identification:  usr.Identification,
		NextOfKin:       usr.NextOfKin,
		Role:            string(usr.Role),
		ProfileComplete: usr.ProfileComplete,
		CreatedAt:       usr.CreatedAt,
	}
}

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	loanDomain "loanledger-backend/internal/domain/loan"
	domain "loanledger-backend/internal/domain/user"
	"loanledger-backend/internal/usecase/auth"
	loanUC "loanledger-backend/internal/usecase/loan"
	"loanledger-backend/pkg/id"
	"loanledger-backend/pkg/money"
)

// Usecase is the admin side of account management: the borrower-facing
// register/profile flows live in the auth usecase.
type Usecase struct {
	users      domain.Repository
	loans      *loanUC.Usecase
	bcryptCost int
}

func NewUsecase(users domain.Repository, loans *loanUC.Usecase, bcryptCost int) *Usecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Usecase{users: users, loans: loans, bcryptCost: bcryptCost}
}

type AddInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Phone    string
	Address  string
}

func (u *Usecase) Add(ctx context.Context, in AddInput) (*auth.UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if in.Role != domain.RoleUser && in.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
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
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         in.Role,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return auth.ToUserDTO(usr), nil
}

type UpdateInput struct {
	Name           string
	Phone          string
	Address        string
	Employment     string
	MonthlyIncome  *money.Amount
	Identification string
	NextOfKin      string
}

// Update patches profile fields; empty strings leave the stored value alone.
func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput) (*auth.UserDTO, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		usr.Name = in.Name
	}
	if in.Phone != "" {
		usr.Phone = in.Phone
	}
	if in.Address != "" {
		usr.Address = in.Address
	}
	if in.Employment != "" {
		usr.Employment = in.Employment
	}
	if in.MonthlyIncome != nil {
		usr.MonthlyIncome = *in.MonthlyIncome
	}
	if in.Identification != "" {
		usr.Identification = in.Identification
	}
	if in.NextOfKin != "" {
		usr.NextOfKin = in.NextOfKin
	}

	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return auth.ToUserDTO(usr), nil
}

func (u *Usecase) Remove(ctx context.Context, userID string) error {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return err
	}
	return u.users.Delete(ctx, usr)
}

func (u *Usecase) List(ctx context.Context, offset, limit int) ([]auth.UserDTO, error) {
	users, err := u.users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]auth.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *auth.ToUserDTO(&users[i]))
	}
	return out, nil
}

// Details is the admin drill-down: the user's profile plus all their loans.
type Details struct {
	User  auth.UserDTO     `json:"user"`
	Loans []loanUC.LoanDTO `json:"loans"`
}

func (u *Usecase) Details(ctx context.Context, userID string) (*Details, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.ListForBorrower(ctx, usr.UserID, loanDomain.Status(""), 0, 0)
	if err != nil {
		return nil, err
	}
	return &Details{User: *auth.ToUserDTO(usr), Loans: loans}, nil
}

func (u *Usecase) get(ctx context.Context, userID string) (*domain.User, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return usr, nil
}

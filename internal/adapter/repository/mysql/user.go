package mysql

import (
	"context"

	"gorm.io/gorm"

	userDomain "loanledger-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *UserRepository) Delete(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Delete(u).Error
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limitOrAll(limit)).
		Find(&out)
	return out, res.Error
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Count(&n)
	return n, res.Error
}

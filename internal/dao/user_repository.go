package dao

import (
	"context"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/model"
	"github.com/inkwells/smart-note-service/pkg/timex"
)

// userRepository domain.UserRepository 的 gorm 实现
type userRepository struct {
	dao *Dao
}

var _ domain.UserRepository = (*userRepository)(nil)

func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userToModel(user)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return userToDomain(m), nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	if err := r.dao.DB().WithContext(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		return nil, err
	}
	return userToDomain(&m), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	if err := r.dao.DB().WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return userToDomain(&m), nil
}

func userToModel(u *domain.User) *model.User {
	return &model.User{
		UID:       u.UID,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userToDomain(m *model.User) *domain.User {
	return &domain.User{
		UID:       m.UID,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

package repository

import (
	"context"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, userID).Error
	if isNotFound(err) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByGithubID(ctx context.Context, githubID string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("github_id = ?", githubID).First(&u).Error
	if isNotFound(err) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, repo.ErrConflict
		}
		return model.User{}, err
	}
	return u, nil
}

// プロフィール（GitHub側の表示名など）を更新
func (r *UserGormRepository) UpdateProfile(ctx context.Context, u model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"username": u.Username,
		"email":    u.Email,
		"avatar":   u.Avatar,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

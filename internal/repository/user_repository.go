package repository

import (
	"context"

	"robostore/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByGithubID(ctx context.Context, githubID string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	UpdateProfile(ctx context.Context, u model.User) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	CountAll(ctx context.Context) (int64, error)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByGithubID(ctx context.Context, githubID string) (model.User, error) {
	args := m.Called(ctx, githubID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *AuthUserRepoMock) UpdateProfile(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *AuthUserRepoMock) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AuthUserRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in AuthUsecase tests")
}

type stubGithubExchanger struct {
	user GithubUser
	err  error
}

func (s *stubGithubExchanger) Exchange(ctx context.Context, code string) (GithubUser, error) {
	return s.user, s.err
}

func octocat() GithubUser {
	return GithubUser{
		ID:        "583231",
		Login:     "octocat",
		Email:     "octocat@example.com",
		AvatarURL: "https://avatars.example.com/583231",
	}
}

// =====================
// LoginWithGithub tests
// =====================

func TestLoginWithGithub_CreatesUserOnFirstLogin(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("FindByGithubID", mock.Anything, "583231").Return(model.User{}, repo.ErrNotFound)

	var captured model.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.User)
	}).Return(model.User{ID: 5, GithubID: "583231", Username: "octocat"}, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(5)).Return(nil)

	uc := NewAuthUsecase(users, &stubGithubExchanger{user: octocat()}, "test-secret", &fixedClock{t: cpnNow})

	out, err := uc.LoginWithGithub(context.Background(), "oauth-code")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.User.ID)
	assert.NotEmpty(t, out.AccessToken)

	//新規ユーザーは一般権限
	assert.False(t, captured.IsAdmin)
	assert.Equal(t, "583231", captured.GithubID)
}

func TestLoginWithGithub_RefreshesProfileOnReturn(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("FindByGithubID", mock.Anything, "583231").Return(model.User{
		ID: 5, GithubID: "583231", Username: "old-name", IsAdmin: true,
	}, nil)

	var updated model.User
	users.On("UpdateProfile", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(model.User)
	}).Return(nil)
	users.On("UpdateLastLogin", mock.Anything, int64(5)).Return(nil)

	uc := NewAuthUsecase(users, &stubGithubExchanger{user: octocat()}, "test-secret", &fixedClock{t: cpnNow})

	out, err := uc.LoginWithGithub(context.Background(), "oauth-code")
	assert.NoError(t, err)
	assert.Equal(t, "octocat", updated.Username)
	assert.True(t, out.User.IsAdmin)
}

func TestLoginWithGithub_TokenCarriesAdminClaim(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("FindByGithubID", mock.Anything, "583231").Return(model.User{
		ID: 5, GithubID: "583231", Username: "octocat", IsAdmin: true,
	}, nil)
	users.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
	users.On("UpdateLastLogin", mock.Anything, int64(5)).Return(nil)

	//期限切れ判定を避けるため現在時刻で発行する
	uc := NewAuthUsecase(users, &stubGithubExchanger{user: octocat()}, "test-secret", &fixedClock{t: time.Now()})

	out, err := uc.LoginWithGithub(context.Background(), "oauth-code")
	assert.NoError(t, err)

	tok, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, float64(5), claims["sub"])
}

func TestLoginWithGithub_ExchangeFails(t *testing.T) {
	uc := NewAuthUsecase(new(AuthUserRepoMock), &stubGithubExchanger{err: errors.New("bad code")}, "test-secret", &fixedClock{t: cpnNow})

	_, err := uc.LoginWithGithub(context.Background(), "oauth-code")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
}

func TestLoginWithGithub_EmptyCode(t *testing.T) {
	uc := NewAuthUsecase(new(AuthUserRepoMock), &stubGithubExchanger{}, "test-secret", &fixedClock{t: cpnNow})

	_, err := uc.LoginWithGithub(context.Background(), "  ")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

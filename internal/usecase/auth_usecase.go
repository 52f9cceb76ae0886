package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

// accesstokenの有効期限
const accessTokenTTL = 7 * 24 * time.Hour

// GitHubから取得したユーザー情報
type GithubUser struct {
	ID        string
	Login     string
	Email     string
	AvatarURL string
}

// OAuthのcode交換。infra側で実装する
type GithubExchanger interface {
	Exchange(ctx context.Context, code string) (GithubUser, error)
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	IsAdmin  bool   `json:"is_admin"`
}

type AuthLoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

type AuthUsecase struct {
	users     repo.UserRepository
	github    GithubExchanger
	jwtSecret string
	clock     Clock
}

func NewAuthUsecase(users repo.UserRepository, github GithubExchanger, jwtSecret string, clock Clock) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		github:    github,
		jwtSecret: jwtSecret,
		clock:     clock,
	}
}

// GitHubのcodeでログイン。初回は自動でユーザー作成する
func (u *AuthUsecase) LoginWithGithub(ctx context.Context, code string) (AuthLoginResponse, error) {
	if strings.TrimSpace(code) == "" {
		return AuthLoginResponse{}, NewHTTPError(http.StatusBadRequest, "code required")
	}

	gu, err := u.github.Exchange(ctx, code)
	if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "github authentication failed")
	}
	if gu.ID == "" {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "github authentication failed")
	}

	user, err := u.users.FindByGithubID(ctx, gu.ID)
	if err == repo.ErrNotFound {
		now := u.clock.Now()
		user, err = u.users.Create(ctx, model.User{
			GithubID:  gu.ID,
			Username:  gu.Login,
			Email:     gu.Email,
			Avatar:    gu.AvatarURL,
			IsAdmin:   false,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else {
		//プロフィールはGitHub側を正とする
		user.Username = gu.Login
		user.Email = gu.Email
		user.Avatar = gu.AvatarURL
		user.UpdatedAt = u.clock.Now()
		if err := u.users.UpdateProfile(ctx, user); err != nil {
			return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if err := u.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AuthLoginResponse{
		User:        toUserDTO(user),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user model.User) (string, int, error) {
	now := u.clock.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.jwtSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		IsAdmin:  u.IsAdmin,
	}
}

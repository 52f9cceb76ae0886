package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"robostore/internal/usecase"
)

const (
	tokenURL = "https://github.com/login/oauth/access_token"
	userURL  = "https://api.github.com/user"
)

// GitHub OAuthのcode交換クライアント。
// usecase.GithubExchangerの実装。
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Exchange はcodeをaccess tokenに交換し、ユーザー情報を取得する
func (c *Client) Exchange(ctx context.Context, code string) (usecase.GithubUser, error) {
	token, err := c.exchangeCode(ctx, code)
	if err != nil {
		return usecase.GithubUser{}, err
	}
	return c.fetchUser(ctx, token)
}

func (c *Client) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("token endpoint returned " + resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if body.Error != "" || body.AccessToken == "" {
		return "", errors.New("invalid code")
	}

	return body.AccessToken, nil
}

func (c *Client) fetchUser(ctx context.Context, accessToken string) (usecase.GithubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userURL, nil)
	if err != nil {
		return usecase.GithubUser{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return usecase.GithubUser{}, fmt.Errorf("sending user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return usecase.GithubUser{}, errors.New("user endpoint returned " + resp.Status)
	}

	var body struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return usecase.GithubUser{}, fmt.Errorf("decoding user response: %w", err)
	}

	return usecase.GithubUser{
		ID:        strconv.FormatInt(body.ID, 10),
		Login:     body.Login,
		Email:     body.Email,
		AvatarURL: body.AvatarURL,
	}, nil
}

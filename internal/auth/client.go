package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/societyfixer/hustings/internal/config"
)

// TokenBundle is the credential set issued by the identity provider.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User is the provider's view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client proxies credential operations to the external identity provider's
// REST endpoints. It never stores credentials; tokens pass through to the
// caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a provider client from the auth config.
func NewClient(cfg *config.AuthConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.ProviderURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeoutDuration()},
	}
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*TokenBundle, error) {
	body := map[string]string{"email": email, "password": password}
	return c.tokenRequest(ctx, http.MethodPost, "/signup", "", body)
}

// SignIn exchanges credentials for a token bundle.
func (c *Client) SignIn(ctx context.Context, email, password string) (*TokenBundle, error) {
	body := map[string]string{"email": email, "password": password}
	bundle, err := c.tokenRequest(ctx, http.MethodPost, "/token?grant_type=password", "", body)
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// Refresh exchanges a refresh token for a new bundle.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenBundle, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return c.tokenRequest(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body)
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.statusRequest(ctx, http.MethodPost, "/logout", accessToken, nil)
}

// RequestPasswordReset asks the provider to send a recovery email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.statusRequest(ctx, http.MethodPost, "/recover", "", map[string]string{"email": email})
}

// UpdatePassword sets a new password for the authenticated account.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	return c.statusRequest(ctx, http.MethodPut, "/user", accessToken, map[string]string{"password": newPassword})
}

func (c *Client) tokenRequest(ctx context.Context, method, path, token string, body any) (*TokenBundle, error) {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var bundle TokenBundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrProvider, err)
	}
	return &bundle, nil
}

func (c *Client) statusRequest(ctx context.Context, method, path, token string, body any) error {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusUnprocessableEntity {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
}

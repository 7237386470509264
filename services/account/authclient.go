package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"themeweek/models"
)

// HTTPAuthClient talks to a GoTrue-compatible hosted auth API.
type HTTPAuthClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewHTTPAuthClient(baseURL, apiKey string) *HTTPAuthClient {
	return &HTTPAuthClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// authErrorBody covers the error shapes the auth API responds with.
type authErrorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (b authErrorBody) text() string {
	switch {
	case b.Msg != "":
		return b.Msg
	case b.ErrorDescription != "":
		return b.ErrorDescription
	default:
		return b.Message
	}
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Non-2xx responses become AuthServiceError with the service's message.
func (c *HTTPAuthClient) do(ctx context.Context, method, path string, accessToken string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode auth request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.APIKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return AuthServiceError{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody authErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return AuthServiceError{Status: resp.StatusCode, Message: errBody.text()}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return nil
}

func (c *HTTPAuthClient) SignUp(ctx context.Context, email, password string) (*models.RemoteAccount, error) {
	// With email confirmation enabled the API nests the account under "user".
	var resp struct {
		models.RemoteAccount
		User models.RemoteAccount `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}
	account := resp.RemoteAccount
	if account.ID == "" {
		account = resp.User
	}
	return &account, nil
}

func (c *HTTPAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*models.RemoteSession, error) {
	var session models.RemoteSession
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPAuthClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.do(ctx, http.MethodPost, path, "", map[string]string{"email": email}, nil)
}

func (c *HTTPAuthClient) GetUser(ctx context.Context, accessToken string) (*models.RemoteAccount, error) {
	var account models.RemoteAccount
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPAuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

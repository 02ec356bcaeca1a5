package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrIdentityUserNotFound = errors.New("identity provider: user not found")

type IdentityUser struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Verified bool   `json:"email_verified"`
}

// IdentityProvider is the external authority for admin accounts.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*IdentityUser, error)
	VerificationLink(ctx context.Context, email string) (string, error)
}

// RESTIdentityProvider talks to the identity provider's JSON API.
type RESTIdentityProvider struct {
	client *resty.Client
}

type identityAPIError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewRESTIdentityProvider(baseURL, apiKey string, timeout time.Duration) *RESTIdentityProvider {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", apiKey).
		SetTimeout(timeout)

	return &RESTIdentityProvider{client: client}
}

func (p *RESTIdentityProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	var out struct {
		UID string `json:"uid"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&identityAPIError{}).
		Post("/v1/users")
	if err := checkIdentityResponse("create user", resp, err); err != nil {
		return "", err
	}
	if out.UID == "" {
		return "", fmt.Errorf("identity provider create user: empty uid")
	}
	return out.UID, nil
}

func (p *RESTIdentityProvider) GetUserByEmail(ctx context.Context, email string) (*IdentityUser, error) {
	var out IdentityUser
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&out).
		SetError(&identityAPIError{}).
		Get("/v1/users")
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil, ErrIdentityUserNotFound
	}
	if err := checkIdentityResponse("get user", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *RESTIdentityProvider) VerificationLink(ctx context.Context, email string) (string, error) {
	var out struct {
		Link string `json:"link"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		SetResult(&out).
		SetError(&identityAPIError{}).
		Post("/v1/users/verification-link")
	if err := checkIdentityResponse("verification link", resp, err); err != nil {
		return "", err
	}
	return out.Link, nil
}

func checkIdentityResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("identity provider %s: %w", op, err)
	}
	if resp.IsError() {
		if apiErr, ok := resp.Error().(*identityAPIError); ok && apiErr.Error.Message != "" {
			return fmt.Errorf("identity provider %s failed with status %d: %s", op, resp.StatusCode(), apiErr.Error.Message)
		}
		return fmt.Errorf("identity provider %s failed with status %d", op, resp.StatusCode())
	}
	return nil
}

package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// Login exchanges a username and password for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", username, "is required")
	}
	if password == "" {
		return nil, errors.NewValidationError("password", "", "is required")
	}

	form := url.Values{
		"username": {username},
		"password": {password},
	}
	resp, err := c.transport.PostForm(ctx, pathToken, form)
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := transport.DecodeResponse(resp, &token); err != nil {
		if errors.IsUnauthorized(err) || errors.IsValidationError(err) {
			return nil, errors.NewAuthenticationError(username, "password", "invalid username or password", err)
		}
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.NewAuthenticationError(username, "password", "token endpoint returned no access token", nil)
	}
	return &token, nil
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.transport.Get(ctx, pathMe, nil)
	if err != nil {
		return nil, err
	}

	var dto UserResponse
	if err := transport.DecodeResponse(resp, &dto); err != nil {
		return nil, err
	}
	user := dto.toUser()
	return &user, nil
}

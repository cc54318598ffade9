package client

import (
	"context"
	"net/http"
	"time"
)

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

type VerifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user"`
}

type ProfileResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// ProfileUpdate sends only the fields that are set.
type ProfileUpdate struct {
	Name              *string `json:"name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth/register", credentials{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := c.Do(ctx, http.MethodGet, "/auth/verify", nil, &out, WithBearer(token)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out ProfileResponse
	if err := c.Do(ctx, http.MethodGet, "/users/me", nil, &out, WithBearer(token)); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, update ProfileUpdate) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.Do(ctx, http.MethodPut, "/users/me", update, &out, WithBearer(token)); err != nil {
		return nil, err
	}
	return &out, nil
}

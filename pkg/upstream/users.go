package upstream

import (
	"context"
	"net/http"
)

// CreateUserRequest is the admin user creation payload. No OTP is involved;
// the upstream provisions the account directly.
type CreateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	env, err := c.do(ctx, "users.list", http.MethodGet, "/admin/users", token, nil)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := c.decodeField("users.list", env.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser provisions an account on behalf of an admin.
func (c *Client) CreateUser(ctx context.Context, token string, req CreateUserRequest) (*User, error) {
	env, err := c.do(ctx, "users.create", http.MethodPost, "/admin/users/new", token, req)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.decodeField("users.create", env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) (string, error) {
	env, err := c.do(ctx, "users.delete", http.MethodDelete, "/admin/users/"+escapePath(userID)+"/delete", token, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Package users fronts the upstream admin user endpoints.
package users

import (
	"context"
	"strings"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

// UserUpstream is the slice of the commerce API this service needs.
type UserUpstream interface {
	ListUsers(ctx context.Context, token string) ([]upstream.User, error)
	CreateUser(ctx context.Context, token string, req upstream.CreateUserRequest) (*upstream.User, error)
	DeleteUser(ctx context.Context, token, userID string) (string, error)
}

// CreateUserInput is the validated admin payload for provisioning an account.
type CreateUserInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
}

// Service exposes the admin user operations.
type Service interface {
	List(ctx context.Context, token string) ([]upstream.User, error)
	Create(ctx context.Context, token string, input CreateUserInput) (*upstream.User, error)
	Delete(ctx context.Context, token, userID string) (string, error)
}

type service struct {
	upstream UserUpstream
}

// NewService builds the users service.
func NewService(up UserUpstream) (Service, error) {
	if up == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream client is required")
	}
	return &service{upstream: up}, nil
}

func (s *service) List(ctx context.Context, token string) ([]upstream.User, error) {
	return s.upstream.ListUsers(ctx, token)
}

func (s *service) Create(ctx context.Context, token string, input CreateUserInput) (*upstream.User, error) {
	return s.upstream.CreateUser(ctx, token, upstream.CreateUserRequest{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		IsAdmin: input.IsAdmin,
	})
}

func (s *service) Delete(ctx context.Context, token, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.upstream.DeleteUser(ctx, token, userID)
}

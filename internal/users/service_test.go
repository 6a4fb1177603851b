package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type stubUserUpstream struct {
	users       []upstream.User
	user        *upstream.User
	message     string
	lastRequest upstream.CreateUserRequest
	lastUserID  string
}

func (s *stubUserUpstream) ListUsers(ctx context.Context, token string) ([]upstream.User, error) {
	return s.users, nil
}

func (s *stubUserUpstream) CreateUser(ctx context.Context, token string, req upstream.CreateUserRequest) (*upstream.User, error) {
	s.lastRequest = req
	return s.user, nil
}

func (s *stubUserUpstream) DeleteUser(ctx context.Context, token, userID string) (string, error) {
	s.lastUserID = userID
	return s.message, nil
}

func TestCreateNormalizesFields(t *testing.T) {
	up := &stubUserUpstream{user: &upstream.User{ID: "u1"}}
	svc, err := NewService(up)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "tok", CreateUserInput{
		Name:  "  Jane Doe ",
		Email: " Jane@Example.COM ",
		Phone: " 9999999999 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", up.lastRequest.Name)
	assert.Equal(t, "jane@example.com", up.lastRequest.Email)
	assert.Equal(t, "9999999999", up.lastRequest.Phone)
}

func TestDeleteRequiresUserID(t *testing.T) {
	svc, err := NewService(&stubUserUpstream{})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), "tok", "  ")
	require.Error(t, err)
}

func TestDeleteTrimsUserID(t *testing.T) {
	up := &stubUserUpstream{message: "user deleted"}
	svc, err := NewService(up)
	require.NoError(t, err)

	message, err := svc.Delete(context.Background(), "tok", " u1 ")
	require.NoError(t, err)
	assert.Equal(t, "user deleted", message)
	assert.Equal(t, "u1", up.lastUserID)
}

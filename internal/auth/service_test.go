package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type stubStore struct {
	values  map[string]string
	lastTTL time.Duration
	setErr  error
	getErr  error
	delErr  error
}

func newStubStore() *stubStore {
	return &stubStore{values: map[string]string{}}
}

func (s *stubStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value.(string)
	s.lastTTL = ttl
	return nil
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *stubStore) Del(ctx context.Context, keys ...string) error {
	if s.delErr != nil {
		return s.delErr
	}
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubStore) SessionKey(sessionID string) string {
	return "session:" + sessionID
}

type stubAuthenticator struct {
	otpErr      error
	lastEmail   string
	lastPurpose string
	lastName    string
	result      *upstream.AuthResult
	loginErr    error
	registerErr error
}

func (s *stubAuthenticator) RequestOTP(ctx context.Context, email, purpose string) error {
	s.lastEmail = email
	s.lastPurpose = purpose
	return s.otpErr
}

func (s *stubAuthenticator) Login(ctx context.Context, email, otp string) (*upstream.AuthResult, error) {
	s.lastEmail = email
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.result, nil
}

func (s *stubAuthenticator) Register(ctx context.Context, email, otp, name string) (*upstream.AuthResult, error) {
	s.lastEmail = email
	s.lastName = name
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.result, nil
}

func newTestService(t *testing.T, up *stubAuthenticator, store *stubStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Upstream:   up,
		Store:      store,
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{Store: newStubStore(), SessionTTL: time.Hour})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Upstream: &stubAuthenticator{}, SessionTTL: time.Hour})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Upstream: &stubAuthenticator{}, Store: newStubStore()})
	require.Error(t, err)
}

func TestRequestOTPNormalizesEmail(t *testing.T) {
	up := &stubAuthenticator{}
	svc := newTestService(t, up, newStubStore())

	err := svc.RequestOTP(context.Background(), "  Jane@Example.COM ", upstream.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", up.lastEmail)
}

func TestRequestOTPRejectsUnknownPurpose(t *testing.T) {
	svc := newTestService(t, &stubAuthenticator{}, newStubStore())

	err := svc.RequestOTP(context.Background(), "jane@example.com", "reset")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginMintsSession(t *testing.T) {
	store := newStubStore()
	up := &stubAuthenticator{result: &upstream.AuthResult{
		Token: "opaque-token",
		User:  upstream.User{ID: "u1", Email: "jane@example.com"},
	}}
	svc := newTestService(t, up, store)

	session, err := svc.Login(context.Background(), "jane@example.com", "123456")
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, "opaque-token", session.Token)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, time.Hour, store.lastTTL)

	resolved, err := svc.Resolve(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Token, resolved.Token)
	assert.Equal(t, session.User, resolved.User)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	up := &stubAuthenticator{result: &upstream.AuthResult{Token: "  "}}
	svc := newTestService(t, up, newStubStore())

	_, err := svc.Login(context.Background(), "jane@example.com", "123456")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestRegisterPassesTrimmedName(t *testing.T) {
	up := &stubAuthenticator{result: &upstream.AuthResult{
		Token: "tok",
		User:  upstream.User{ID: "u2"},
	}}
	svc := newTestService(t, up, newStubStore())

	_, err := svc.Register(context.Background(), "jane@example.com", "123456", "  Jane  ")
	require.NoError(t, err)
	assert.Equal(t, "Jane", up.lastName)
}

func TestResolveExpiredSession(t *testing.T) {
	svc := newTestService(t, &stubAuthenticator{}, newStubStore())

	_, err := svc.Resolve(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newStubStore()
	up := &stubAuthenticator{result: &upstream.AuthResult{Token: "tok", User: upstream.User{ID: "u1"}}}
	svc := newTestService(t, up, store)

	session, err := svc.Login(context.Background(), "jane@example.com", "123456")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))

	_, err = svc.Resolve(context.Background(), session.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestSessionTokenNeverSerialized(t *testing.T) {
	session := Session{ID: "s1", Token: "secret", User: upstream.User{ID: "u1"}}

	payload, err := json.Marshal(session)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "secret")
}

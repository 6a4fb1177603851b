// Package auth exchanges upstream OTP verifications for gateway sessions. The
// upstream token is opaque by contract: it is stored and forwarded, never
// parsed.
package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/redis"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

// Session is what a resolved gateway session carries: the opaque upstream
// token and the user snapshot taken at login.
type Session struct {
	ID    string        `json:"id"`
	Token string        `json:"-"`
	User  upstream.User `json:"user"`
}

// sessionRecord is the redis-serialized form.
type sessionRecord struct {
	Token string        `json:"token"`
	User  upstream.User `json:"user"`
}

// SessionStore is the slice of the redis client sessions need.
type SessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// OTPAuthenticator is the slice of the upstream client auth needs.
type OTPAuthenticator interface {
	RequestOTP(ctx context.Context, email, purpose string) error
	Login(ctx context.Context, email, otp string) (*upstream.AuthResult, error)
	Register(ctx context.Context, email, otp, name string) (*upstream.AuthResult, error)
}

// Service exposes OTP passthrough plus session lifecycle.
type Service interface {
	RequestOTP(ctx context.Context, email, purpose string) error
	Login(ctx context.Context, email, otp string) (*Session, error)
	Register(ctx context.Context, email, otp, name string) (*Session, error)
	Resolve(ctx context.Context, sessionID string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Upstream   OTPAuthenticator
	Store      SessionStore
	SessionTTL time.Duration
}

type service struct {
	upstream   OTPAuthenticator
	store      SessionStore
	sessionTTL time.Duration
}

// NewService builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Upstream == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream client is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if params.SessionTTL <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session ttl must be positive")
	}
	return &service{
		upstream:   params.Upstream,
		store:      params.Store,
		sessionTTL: params.SessionTTL,
	}, nil
}

func (s *service) RequestOTP(ctx context.Context, email, purpose string) error {
	email = normalizeEmail(email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	switch purpose {
	case "", upstream.OTPPurposeLogin, upstream.OTPPurposeRegister:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown otp purpose")
	}
	return s.upstream.RequestOTP(ctx, email, purpose)
}

func (s *service) Login(ctx context.Context, email, otp string) (*Session, error) {
	result, err := s.verify(ctx, email, otp, s.upstream.Login)
	if err != nil {
		return nil, err
	}
	return s.mint(ctx, result)
}

func (s *service) Register(ctx context.Context, email, otp, name string) (*Session, error) {
	result, err := s.verify(ctx, email, otp, func(ctx context.Context, email, otp string) (*upstream.AuthResult, error) {
		return s.upstream.Register(ctx, email, otp, strings.TrimSpace(name))
	})
	if err != nil {
		return nil, err
	}
	return s.mint(ctx, result)
}

func (s *service) verify(ctx context.Context, email, otp string, call func(context.Context, string, string) (*upstream.AuthResult, error)) (*upstream.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(otp) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "otp is required")
	}
	result, err := call(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	if result == nil || strings.TrimSpace(result.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream returned no session token")
	}
	return result, nil
}

func (s *service) mint(ctx context.Context, result *upstream.AuthResult) (*Session, error) {
	session := &Session{
		ID:    uuid.NewString(),
		Token: result.Token,
		User:  result.User,
	}

	payload, err := json.Marshal(sessionRecord{Token: session.Token, User: session.User})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize session")
	}
	if err := s.store.Set(ctx, s.store.SessionKey(session.ID), string(payload), s.sessionTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}
	return session, nil
}

func (s *service) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}

	raw, err := s.store.Get(ctx, s.store.SessionKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode session")
	}
	return &Session{ID: sessionID, Token: record.Token, User: record.User}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.store.Del(ctx, s.store.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

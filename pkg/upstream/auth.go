package upstream

import (
	"context"
	"net/http"
)

// OTP purposes accepted by the upstream.
const (
	OTPPurposeLogin    = "Login"
	OTPPurposeRegister = "Register"
)

type requestOTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type loginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type registerRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Name  string `json:"name,omitempty"`
}

// RequestOTP asks the upstream to issue a one-time code to the given email.
func (c *Client) RequestOTP(ctx context.Context, email, purpose string) error {
	if purpose == "" {
		purpose = OTPPurposeLogin
	}
	_, err := c.do(ctx, "auth.request_otp", http.MethodPost, "/auth/request-otp", "", requestOTPRequest{
		Email:   email,
		Purpose: purpose,
	})
	return err
}

// Login verifies an OTP for an existing account and returns the opaque token
// plus the user snapshot.
func (c *Client) Login(ctx context.Context, email, otp string) (*AuthResult, error) {
	env, err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", "", loginRequest{Email: email, OTP: otp})
	if err != nil {
		return nil, err
	}
	var result AuthResult
	if err := c.decodeField("auth.login", env.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register verifies an OTP for a new account and returns the opaque token
// plus the created user.
func (c *Client) Register(ctx context.Context, email, otp, name string) (*AuthResult, error) {
	env, err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", "", registerRequest{
		Email: email,
		OTP:   otp,
		Name:  name,
	})
	if err != nil {
		return nil, err
	}
	var result AuthResult
	if err := c.decodeField("auth.register", env.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

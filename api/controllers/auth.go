package controllers

import (
	"net/http"

	"github.com/aurelia-jewels/storefront-gateway/api/middleware"
	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/auth"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
)

type requestOTPPayload struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=Login Register"`
}

type loginPayload struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type registerPayload struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	User      any    `json:"user"`
}

// AuthRequestOTP forwards an OTP issuance request upstream.
func AuthRequestOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload requestOTPPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RequestOTP(ctx, payload.Email, payload.Purpose); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"sent": true})
	}
}

// AuthLogin verifies an OTP upstream and mints a gateway session.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.Login(ctx, payload.Email, payload.OTP)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sessionResponse{SessionID: session.ID, User: session.User})
	}
}

// AuthRegister verifies an OTP for a new account and mints a gateway session.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload registerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.Register(ctx, payload.Email, payload.OTP, payload.Name)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{SessionID: session.ID, User: session.User})
	}
}

// SessionDropper discards a session's cart/wishlist mirror on logout.
type SessionDropper interface {
	Drop(sessionID string)
}

// AuthLogout revokes the gateway session and drops its mirror.
func AuthLogout(svc auth.Service, mirrors SessionDropper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session := middleware.SessionFromContext(ctx)
		if session == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		if err := svc.Logout(ctx, session.ID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if mirrors != nil {
			mirrors.Drop(session.ID)
		}
		responses.WriteSuccess(w, map[string]bool{"logged_out": true})
	}
}

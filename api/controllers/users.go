package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/users"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
)

func userIDParam(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "userId"))
	if raw == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id is required"))
		return "", false
	}
	return raw, true
}

// UsersList returns every account for the admin table.
func UsersList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		list, err := svc.List(ctx, session.Token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": list})
	}
}

// UsersCreate provisions an account on behalf of an admin.
func UsersCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		var input users.CreateUserInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.Create(ctx, session.Token, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// UsersDelete removes an account. Repeats relay the upstream's idempotent
// answer.
func UsersDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		userID, ok := userIDParam(w, r, logg)
		if !ok {
			return
		}

		message, err := svc.Delete(ctx, session.Token, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}

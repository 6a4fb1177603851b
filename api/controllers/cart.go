package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aurelia-jewels/storefront-gateway/api/middleware"
	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/auth"
	sync "github.com/aurelia-jewels/storefront-gateway/internal/sync"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type addCartPayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

func requireSession(w http.ResponseWriter, r *http.Request, logg *logger.Logger) *auth.Session {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
		return nil
	}
	return session
}

func productIDParam(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	if raw == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
		return "", false
	}
	return raw, true
}

// CartFetch refreshes the mirror from the upstream and returns it.
func CartFetch(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		snapshot, err := sy.Refresh(ctx, session.ID, session.Token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// CartAdd adds one unit of a product and returns the refreshed cart with the
// open-cart hint.
func CartAdd(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		var payload addCartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := sy.AddToCart(ctx, session.ID, session.Token, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemove removes a line and returns the authoritative cart.
func CartRemove(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		items, err := sy.RemoveFromCart(ctx, session.ID, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// CartIncrease bumps a line's quantity by one.
func CartIncrease(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return cartQuantityHandler(logg, sy.IncreaseQuantity)
}

// CartDecrease reduces a line's quantity by one. Whether a quantity-1 line is
// removed or clamped is decided upstream and reflected verbatim.
func CartDecrease(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return cartQuantityHandler(logg, sy.DecreaseQuantity)
}

func cartQuantityHandler(logg *logger.Logger, op func(ctx context.Context, sessionID, token, productID string) ([]upstream.CartItem, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		items, err := op(ctx, session.ID, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

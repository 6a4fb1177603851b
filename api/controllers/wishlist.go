package controllers

import (
	"net/http"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	sync "github.com/aurelia-jewels/storefront-gateway/internal/sync"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
)

type addWishlistPayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistFetch returns the mirrored wishlist without upstream IO; the mirror
// is seeded by CartFetch's refresh on session attach.
func WishlistFetch(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		snapshot := sy.Snapshot(session.ID)
		responses.WriteSuccess(w, map[string]any{"products": snapshot.WishlistItems})
	}
}

// WishlistAdd adds a product and returns the authoritative wishlist.
func WishlistAdd(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		var payload addWishlistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := sy.AddToWishlist(ctx, session.ID, session.Token, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// WishlistRemove removes a product and returns the authoritative wishlist.
func WishlistRemove(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
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

		products, err := sy.RemoveFromWishlist(ctx, session.ID, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// WishlistMoveToCart runs the two-phase move. A partial failure is a success
// response whose outcome reports the item still on the wishlist.
func WishlistMoveToCart(sy *sync.Synchronizer, logg *logger.Logger) http.HandlerFunc {
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

		outcome, err := sy.MoveToCart(ctx, session.ID, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, outcome)
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/orders"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
)

type orderStatusPayload struct {
	Status   string `json:"status" validate:"required"`
	Tracking string `json:"tracking"`
}

func orderIDParam(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
		return "", false
	}
	return raw, true
}

// OrdersList returns every order for the admin table.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]any{"orders": list})
	}
}

// OrdersCreateManual records an order placed outside the storefront.
func OrdersCreateManual(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		var input orders.ManualOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.CreateManual(ctx, session.Token, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersUpdateStatus requests a transition and returns the refetched list
// alongside the transitioned order.
func OrdersUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		orderID, ok := orderIDParam(w, r, logg)
		if !ok {
			return
		}

		var payload orderStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(ctx, session.Token, orderID, payload.Status, payload.Tracking)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

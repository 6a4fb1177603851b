// Package orders fronts the upstream order endpoints for the admin screens.
// The gateway never computes totals or validates transitions; it requests a
// change and re-reads the authoritative list.
package orders

import (
	"context"
	"strings"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

// OrderUpstream is the slice of the commerce API this service needs.
type OrderUpstream interface {
	ListOrders(ctx context.Context, token string) ([]upstream.Order, error)
	CreateManualOrder(ctx context.Context, token string, req upstream.ManualOrderRequest) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status, tracking string) (*upstream.Order, error)
}

// ManualOrderItemInput is one validated line of an admin-created order.
type ManualOrderItemInput struct {
	ProductID  string   `json:"product_id" validate:"required"`
	Quantity   int      `json:"quantity" validate:"gte=1"`
	FinalPrice *float64 `json:"final_price" validate:"omitempty,gte=0"`
}

// ManualOrderInput is the validated manual-order payload.
type ManualOrderInput struct {
	UserID string                 `json:"user_id" validate:"required"`
	Items  []ManualOrderItemInput `json:"items" validate:"required,min=1,dive"`

	ShippingName    string `json:"shipping_name" validate:"required"`
	ShippingPhone   string `json:"shipping_phone" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingCity    string `json:"shipping_city" validate:"required"`
	ShippingState   string `json:"shipping_state" validate:"required"`
	ShippingPincode string `json:"shipping_pincode" validate:"required"`

	PaymentMode string  `json:"payment_mode" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

// StatusUpdateResult pairs the transitioned order with the refetched list so
// the admin table re-renders from authoritative data.
type StatusUpdateResult struct {
	Order  upstream.Order   `json:"order"`
	Orders []upstream.Order `json:"orders"`
}

// Service exposes the admin order operations.
type Service interface {
	List(ctx context.Context, token string) ([]upstream.Order, error)
	CreateManual(ctx context.Context, token string, input ManualOrderInput) (*upstream.Order, error)
	UpdateStatus(ctx context.Context, token, orderID, status, tracking string) (*StatusUpdateResult, error)
}

type service struct {
	upstream OrderUpstream
}

// NewService builds the orders service.
func NewService(up OrderUpstream) (Service, error) {
	if up == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream client is required")
	}
	return &service{upstream: up}, nil
}

func (s *service) List(ctx context.Context, token string) ([]upstream.Order, error) {
	return s.upstream.ListOrders(ctx, token)
}

func (s *service) CreateManual(ctx context.Context, token string, input ManualOrderInput) (*upstream.Order, error) {
	items := make([]upstream.ManualOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, upstream.ManualOrderItem{
			Product:    strings.TrimSpace(item.ProductID),
			Quantity:   item.Quantity,
			FinalPrice: item.FinalPrice,
		})
	}

	return s.upstream.CreateManualOrder(ctx, token, upstream.ManualOrderRequest{
		UserID: strings.TrimSpace(input.UserID),
		Items:  items,
		ShippingAddress: upstream.ShippingAddress{
			Name:    strings.TrimSpace(input.ShippingName),
			Phone:   strings.TrimSpace(input.ShippingPhone),
			Address: strings.TrimSpace(input.ShippingAddress),
			City:    strings.TrimSpace(input.ShippingCity),
			State:   strings.TrimSpace(input.ShippingState),
			Pincode: strings.TrimSpace(input.ShippingPincode),
		},
		PaymentMode: strings.TrimSpace(input.PaymentMode),
		TotalAmount: input.TotalAmount,
	})
}

func (s *service) UpdateStatus(ctx context.Context, token, orderID, status, tracking string) (*StatusUpdateResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	status = strings.TrimSpace(status)
	if !upstream.KnownOrderStatus(status) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status})
	}

	order, err := s.upstream.UpdateOrderStatus(ctx, token, orderID, status, strings.TrimSpace(tracking))
	if err != nil {
		return nil, err
	}

	orders, err := s.upstream.ListOrders(ctx, token)
	if err != nil {
		return nil, err
	}

	return &StatusUpdateResult{Order: *order, Orders: orders}, nil
}

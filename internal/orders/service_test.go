package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type stubOrderUpstream struct {
	orders       []upstream.Order
	listErr      error
	listCalls    int
	order        *upstream.Order
	createErr    error
	updateErr    error
	lastRequest  upstream.ManualOrderRequest
	lastStatus   string
	lastTracking string
}

func (s *stubOrderUpstream) ListOrders(ctx context.Context, token string) ([]upstream.Order, error) {
	s.listCalls++
	return s.orders, s.listErr
}

func (s *stubOrderUpstream) CreateManualOrder(ctx context.Context, token string, req upstream.ManualOrderRequest) (*upstream.Order, error) {
	s.lastRequest = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *stubOrderUpstream) UpdateOrderStatus(ctx context.Context, token, orderID, status, tracking string) (*upstream.Order, error) {
	s.lastStatus = status
	s.lastTracking = tracking
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.order, nil
}

func validManualInput() ManualOrderInput {
	return ManualOrderInput{
		UserID: "u1",
		Items: []ManualOrderItemInput{
			{ProductID: " p1 ", Quantity: 2},
		},
		ShippingName:    "Jane",
		ShippingPhone:   "9999999999",
		ShippingAddress: "12 Park Street",
		ShippingCity:    "Kolkata",
		ShippingState:   "WB",
		ShippingPincode: "700016",
		PaymentMode:     "cod",
		TotalAmount:     4400,
	}
}

func TestCreateManualMapsWirePayload(t *testing.T) {
	up := &stubOrderUpstream{order: &upstream.Order{ID: "o1"}}
	svc, err := NewService(up)
	require.NoError(t, err)

	order, err := svc.CreateManual(context.Background(), "tok", validManualInput())
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	req := up.lastRequest
	assert.Equal(t, "u1", req.UserID)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p1", req.Items[0].Product)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "Kolkata", req.ShippingAddress.City)
	assert.Equal(t, "cod", req.PaymentMode)
	assert.Equal(t, float64(4400), req.TotalAmount)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	up := &stubOrderUpstream{}
	svc, err := NewService(up)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "tok", "o1", "lost-in-transit", "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Equal(t, 0, up.listCalls)
}

func TestUpdateStatusRequiresOrderID(t *testing.T) {
	svc, err := NewService(&stubOrderUpstream{})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "tok", "  ", upstream.OrderStatusShipped, "")
	require.Error(t, err)
}

func TestUpdateStatusRefetchesList(t *testing.T) {
	up := &stubOrderUpstream{
		order:  &upstream.Order{ID: "o1", Status: upstream.OrderStatusShipped},
		orders: []upstream.Order{{ID: "o1"}, {ID: "o2"}},
	}
	svc, err := NewService(up)
	require.NoError(t, err)

	result, err := svc.UpdateStatus(context.Background(), "tok", "o1", upstream.OrderStatusShipped, " AWB123 ")
	require.NoError(t, err)
	assert.Equal(t, upstream.OrderStatusShipped, result.Order.Status)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, 1, up.listCalls)
	assert.Equal(t, "AWB123", up.lastTracking)
}

func TestUpdateStatusPropagatesListFailure(t *testing.T) {
	up := &stubOrderUpstream{
		order:   &upstream.Order{ID: "o1"},
		listErr: pkgerrors.New(pkgerrors.CodeDependency, "list failed"),
	}
	svc, err := NewService(up)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "tok", "o1", upstream.OrderStatusConfirmed, "")
	require.Error(t, err)
}

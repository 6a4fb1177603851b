package upstream

import (
	"context"
	"net/http"
)

// ManualOrderItem is one line of an admin-created order.
type ManualOrderItem struct {
	Product    string   `json:"product"`
	Quantity   int      `json:"quantity"`
	FinalPrice *float64 `json:"finalPrice,omitempty"`
}

// ManualOrderRequest is the POST /orders/manual payload.
type ManualOrderRequest struct {
	UserID          string            `json:"userId"`
	Items           []ManualOrderItem `json:"items"`
	ShippingAddress ShippingAddress   `json:"shippingAddress"`
	PaymentMode     string            `json:"paymentMode"`
	TotalAmount     float64           `json:"totalAmount"`
}

type updateOrderStatusRequest struct {
	Status   string `json:"status"`
	Tracking string `json:"tracking,omitempty"`
}

// ListOrders returns every order, newest first per the upstream's ordering.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	env, err := c.do(ctx, "orders.list", http.MethodGet, "/orders", token, nil)
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := c.decodeField("orders.list", env.Orders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateManualOrder records an order placed outside the storefront.
func (c *Client) CreateManualOrder(ctx context.Context, token string, req ManualOrderRequest) (*Order, error) {
	env, err := c.do(ctx, "orders.create_manual", http.MethodPost, "/orders/manual", token, req)
	if err != nil {
		return nil, err
	}
	var order Order
	if err := c.decodeField("orders.create_manual", env.Order, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus requests a transition. The upstream owns transition
// validation; the gateway forwards and returns whatever it answers.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status, tracking string) (*Order, error) {
	path := "/orders/" + escapePath(orderID) + "/status"
	env, err := c.do(ctx, "orders.update_status", http.MethodPatch, path, token, updateOrderStatusRequest{
		Status:   status,
		Tracking: tracking,
	})
	if err != nil {
		return nil, err
	}
	var order Order
	if err := c.decodeField("orders.update_status", env.Order, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

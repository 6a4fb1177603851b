package upstream

import (
	"context"
	"net/http"
)

type addCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// cartSnapshot is the GET /cart payload shape.
type cartSnapshot struct {
	Cart struct {
		Items []CartItem `json:"items"`
	} `json:"cart"`
}

// cartItems is the DELETE /cart/{id} payload shape.
type cartItems struct {
	Items []CartItem `json:"items"`
}

// AddToCart asks the upstream to add quantity units of a product. The
// authoritative list is not returned by this endpoint; callers refetch.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) error {
	_, err := c.do(ctx, "cart.add", http.MethodPost, "/cart", token, addCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	return err
}

// FetchCart returns the authoritative cart snapshot.
func (c *Client) FetchCart(ctx context.Context, token string) ([]CartItem, error) {
	env, err := c.do(ctx, "cart.fetch", http.MethodGet, "/cart", token, nil)
	if err != nil {
		return nil, err
	}
	var snapshot cartSnapshot
	if err := c.decodeField("cart.fetch", env.Data, &snapshot); err != nil {
		return nil, err
	}
	return snapshot.Cart.Items, nil
}

// RemoveFromCart removes a line and returns the resulting cart.
func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) ([]CartItem, error) {
	env, err := c.do(ctx, "cart.remove", http.MethodDelete, "/cart/"+escapePath(productID), token, nil)
	if err != nil {
		return nil, err
	}
	var payload cartItems
	if err := c.decodeField("cart.remove", env.Data, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// IncreaseQuantity bumps a line's quantity by one and returns the resulting
// cart.
func (c *Client) IncreaseQuantity(ctx context.Context, token, productID string) ([]CartItem, error) {
	return c.patchQuantity(ctx, "cart.increase", token, productID, "increase")
}

// DecreaseQuantity reduces a line's quantity by one. Whether a quantity-1
// line is removed or clamped is the upstream's decision; the returned list
// reflects it either way.
func (c *Client) DecreaseQuantity(ctx context.Context, token, productID string) ([]CartItem, error) {
	return c.patchQuantity(ctx, "cart.decrease", token, productID, "decrease")
}

func (c *Client) patchQuantity(ctx context.Context, op, token, productID, action string) ([]CartItem, error) {
	path := "/cart/" + escapePath(productID) + "/" + action
	env, err := c.do(ctx, op, http.MethodPatch, path, token, nil)
	if err != nil {
		return nil, err
	}
	var items []CartItem
	if err := c.decodeField(op, env.Data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

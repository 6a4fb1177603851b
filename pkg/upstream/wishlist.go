package upstream

import (
	"context"
	"net/http"
)

type addWishlistRequest struct {
	ProductID string `json:"productId"`
}

// wishlistProducts is the payload shape shared by every wishlist endpoint.
type wishlistProducts struct {
	Products []Product `json:"products"`
}

// AddToWishlist adds a product and returns the resulting wishlist.
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) ([]Product, error) {
	env, err := c.do(ctx, "wishlist.add", http.MethodPost, "/wishlist", token, addWishlistRequest{ProductID: productID})
	if err != nil {
		return nil, err
	}
	return c.decodeWishlist("wishlist.add", env)
}

// FetchWishlist returns the authoritative wishlist snapshot.
func (c *Client) FetchWishlist(ctx context.Context, token string) ([]Product, error) {
	env, err := c.do(ctx, "wishlist.fetch", http.MethodGet, "/wishlist", token, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeWishlist("wishlist.fetch", env)
}

// RemoveFromWishlist removes a product and returns the resulting wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) ([]Product, error) {
	env, err := c.do(ctx, "wishlist.remove", http.MethodDelete, "/wishlist/"+escapePath(productID), token, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeWishlist("wishlist.remove", env)
}

func (c *Client) decodeWishlist(op string, env *envelope) ([]Product, error) {
	var payload wishlistProducts
	if err := c.decodeField(op, env.Data, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

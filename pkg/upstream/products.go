package upstream

import (
	"context"
	"io"
	"net/http"
)

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context, token string) ([]Product, error) {
	env, err := c.do(ctx, "product.list", http.MethodGet, "/product", token, nil)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := c.decodeField("product.list", env.Data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, token, productID string) (*Product, error) {
	env, err := c.do(ctx, "product.get", http.MethodGet, "/product/"+escapePath(productID), token, nil)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.decodeField("product.get", env.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct persists a new product. The payload is the full product body
// including any derived pricing fields already recomputed by the gateway.
func (c *Client) CreateProduct(ctx context.Context, token string, payload any) (*Product, error) {
	env, err := c.do(ctx, "product.create", http.MethodPost, "/product", token, payload)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.decodeField("product.create", env.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct patches an existing product.
func (c *Client) UpdateProduct(ctx context.Context, token, productID string, payload any) (*Product, error) {
	env, err := c.do(ctx, "product.update", http.MethodPatch, "/product/"+escapePath(productID), token, payload)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.decodeField("product.update", env.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product permanently. The upstream answers with a
// human-readable message only.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) (string, error) {
	env, err := c.do(ctx, "product.delete", http.MethodDelete, "/product/delete/"+escapePath(productID), token, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// DeactivateProduct soft-deletes a product. Idempotency is the upstream's
// contract; repeated calls are forwarded as-is.
func (c *Client) DeactivateProduct(ctx context.Context, token, productID string) (string, error) {
	env, err := c.do(ctx, "product.deactivate", http.MethodPut, "/product/deactivate/"+escapePath(productID), token, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ReactivateProduct reverses a soft delete and returns the product.
func (c *Client) ReactivateProduct(ctx context.Context, token, productID string) (*Product, error) {
	env, err := c.do(ctx, "product.reactivate", http.MethodPut, "/product/"+escapePath(productID)+"/reactivate", token, nil)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.decodeField("product.reactivate", env.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UploadTempFile streams one media file to the upstream's temp store and
// returns the stored descriptors.
func (c *Client) UploadTempFile(ctx context.Context, token, filename string, content io.Reader) ([]UploadedFile, error) {
	env, err := c.upload(ctx, "product.upload_temp", "/product/upload-temp", token, "images", filename, content)
	if err != nil {
		return nil, err
	}
	var files []UploadedFile
	if err := c.decodeField("product.upload_temp", env.Files, &files); err != nil {
		return nil, err
	}
	return files, nil
}

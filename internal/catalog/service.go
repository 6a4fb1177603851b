// Package catalog fronts the upstream product endpoints for the admin
// screens. It owns no product state; its one piece of logic is recomputing
// the derived pricing fields from the submitted cost inputs before a save is
// forwarded, so the persisted values always match the formula.
package catalog

import (
	"context"
	"io"
	"strings"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"

	"github.com/aurelia-jewels/storefront-gateway/internal/pricing"
)

// ProductUpstream is the slice of the commerce API the catalog needs.
type ProductUpstream interface {
	ListProducts(ctx context.Context, token string) ([]upstream.Product, error)
	GetProduct(ctx context.Context, token, productID string) (*upstream.Product, error)
	CreateProduct(ctx context.Context, token string, payload any) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, token, productID string, payload any) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) (string, error)
	DeactivateProduct(ctx context.Context, token, productID string) (string, error)
	ReactivateProduct(ctx context.Context, token, productID string) (*upstream.Product, error)
	UploadTempFile(ctx context.Context, token, filename string, content io.Reader) ([]upstream.UploadedFile, error)
}

// ProductInput is the admin form payload. The cost block is optional; when
// buy_price is present the derived fields are recomputed server-side and the
// client-submitted values, if any, are ignored.
type ProductInput struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gte=0"`
	OriginalPrice float64 `json:"original_price" validate:"gte=0"`
	Category      string  `json:"category" validate:"required"`
	Material      string  `json:"material" validate:"required"`
	Stock         int     `json:"stock" validate:"gte=0"`
	SKU           string  `json:"sku"`

	Images []upstream.ProductImage `json:"images"`

	IsNewArrival bool `json:"is_new_arrival"`
	IsBestSeller bool `json:"is_best_seller"`

	Meta *upstream.ProductMeta `json:"meta"`

	BuyPrice           *float64 `json:"buy_price" validate:"omitempty,gte=0"`
	GSTPercent         *float64 `json:"gst_percent" validate:"omitempty,gte=0"`
	RazorpayCutPercent *float64 `json:"razorpay_cut_percent" validate:"omitempty,gte=0"`
	DeliveryFee        *float64 `json:"delivery_fee" validate:"omitempty,gte=0"`
}

// productPayload is the wire form sent upstream on create/update.
type productPayload struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Category      string  `json:"category"`
	Material      string  `json:"material"`
	Stock         int     `json:"stock"`
	SKU           string  `json:"sku,omitempty"`

	Images []upstream.ProductImage `json:"images"`

	IsNewArrival bool `json:"isNewArrival"`
	IsBestSeller bool `json:"isBestSeller"`

	Meta *upstream.ProductMeta `json:"meta,omitempty"`

	BuyPrice           *float64 `json:"buyPrice,omitempty"`
	GSTPercent         *float64 `json:"gstPercent,omitempty"`
	RazorpayCutPercent *float64 `json:"razorpayCutPercent,omitempty"`
	DeliveryFee        *float64 `json:"deliveryFee,omitempty"`

	TotalCostBeforeMarkup  *float64 `json:"totalCostBeforeMarkup,omitempty"`
	CalculatedSellingPrice *float64 `json:"calculatedSellingPrice,omitempty"`
}

// Service exposes the catalog admin operations.
type Service interface {
	List(ctx context.Context, token string) ([]upstream.Product, error)
	Get(ctx context.Context, token, productID string) (*upstream.Product, error)
	Create(ctx context.Context, token string, input ProductInput) (*upstream.Product, error)
	Update(ctx context.Context, token, productID string, input ProductInput) (*upstream.Product, error)
	Delete(ctx context.Context, token, productID string) (string, error)
	Deactivate(ctx context.Context, token, productID string) (string, error)
	Reactivate(ctx context.Context, token, productID string) (*upstream.Product, error)
	UploadTemp(ctx context.Context, token, filename string, content io.Reader) ([]upstream.UploadedFile, error)
}

type service struct {
	upstream ProductUpstream
}

// NewService builds the catalog service.
func NewService(up ProductUpstream) (Service, error) {
	if up == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream client is required")
	}
	return &service{upstream: up}, nil
}

func (s *service) List(ctx context.Context, token string) ([]upstream.Product, error) {
	return s.upstream.ListProducts(ctx, token)
}

func (s *service) Get(ctx context.Context, token, productID string) (*upstream.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.upstream.GetProduct(ctx, token, productID)
}

func (s *service) Create(ctx context.Context, token string, input ProductInput) (*upstream.Product, error) {
	payload, err := buildPayload(input)
	if err != nil {
		return nil, err
	}
	return s.upstream.CreateProduct(ctx, token, payload)
}

func (s *service) Update(ctx context.Context, token, productID string, input ProductInput) (*upstream.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	payload, err := buildPayload(input)
	if err != nil {
		return nil, err
	}
	return s.upstream.UpdateProduct(ctx, token, productID, payload)
}

func (s *service) Delete(ctx context.Context, token, productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.upstream.DeleteProduct(ctx, token, productID)
}

func (s *service) Deactivate(ctx context.Context, token, productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.upstream.DeactivateProduct(ctx, token, productID)
}

func (s *service) Reactivate(ctx context.Context, token, productID string) (*upstream.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.upstream.ReactivateProduct(ctx, token, productID)
}

func (s *service) UploadTemp(ctx context.Context, token, filename string, content io.Reader) ([]upstream.UploadedFile, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}
	return s.upstream.UploadTempFile(ctx, token, filename, content)
}

func buildPayload(input ProductInput) (productPayload, error) {
	payload := productPayload{
		Title:              strings.TrimSpace(input.Title),
		Description:        strings.TrimSpace(input.Description),
		Price:              input.Price,
		OriginalPrice:      input.OriginalPrice,
		Category:           strings.TrimSpace(input.Category),
		Material:           strings.TrimSpace(input.Material),
		Stock:              input.Stock,
		SKU:                strings.TrimSpace(input.SKU),
		Images:             input.Images,
		IsNewArrival:       input.IsNewArrival,
		IsBestSeller:       input.IsBestSeller,
		Meta:               input.Meta,
		BuyPrice:           input.BuyPrice,
		GSTPercent:         input.GSTPercent,
		RazorpayCutPercent: input.RazorpayCutPercent,
		DeliveryFee:        input.DeliveryFee,
	}

	if input.BuyPrice == nil {
		return payload, nil
	}

	inputs, err := pricing.InputsFromFloats(
		*input.BuyPrice,
		floatOrZero(input.DeliveryFee),
		floatOrZero(input.GSTPercent),
		floatOrZero(input.RazorpayCutPercent),
	)
	if err != nil {
		return productPayload{}, err
	}
	quote := pricing.Derive(inputs)

	total := quote.TotalCostBeforeMarkup.InexactFloat64()
	selling := quote.CalculatedSellingPrice.InexactFloat64()
	payload.TotalCostBeforeMarkup = &total
	payload.CalculatedSellingPrice = &selling
	return payload, nil
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

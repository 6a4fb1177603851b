package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type stubProductUpstream struct {
	products    []upstream.Product
	product     *upstream.Product
	listErr     error
	createErr   error
	lastPayload any
	message     string
	files       []upstream.UploadedFile
}

func (s *stubProductUpstream) ListProducts(ctx context.Context, token string) ([]upstream.Product, error) {
	return s.products, s.listErr
}

func (s *stubProductUpstream) GetProduct(ctx context.Context, token, productID string) (*upstream.Product, error) {
	return s.product, nil
}

func (s *stubProductUpstream) CreateProduct(ctx context.Context, token string, payload any) (*upstream.Product, error) {
	s.lastPayload = payload
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.product, nil
}

func (s *stubProductUpstream) UpdateProduct(ctx context.Context, token, productID string, payload any) (*upstream.Product, error) {
	s.lastPayload = payload
	return s.product, nil
}

func (s *stubProductUpstream) DeleteProduct(ctx context.Context, token, productID string) (string, error) {
	return s.message, nil
}

func (s *stubProductUpstream) DeactivateProduct(ctx context.Context, token, productID string) (string, error) {
	return s.message, nil
}

func (s *stubProductUpstream) ReactivateProduct(ctx context.Context, token, productID string) (*upstream.Product, error) {
	return s.product, nil
}

func (s *stubProductUpstream) UploadTempFile(ctx context.Context, token, filename string, content io.Reader) ([]upstream.UploadedFile, error) {
	return s.files, nil
}

func f64(v float64) *float64 { return &v }

func validInput() ProductInput {
	return ProductInput{
		Title:    "Gold Hoop Earrings",
		Price:    2200,
		Category: "earrings",
		Material: "gold",
		Stock:    5,
	}
}

func TestCreateRecomputesDerivedPricing(t *testing.T) {
	up := &stubProductUpstream{product: &upstream.Product{ID: "p1"}}
	svc, err := NewService(up)
	require.NoError(t, err)

	input := validInput()
	input.BuyPrice = f64(1000)
	input.GSTPercent = f64(3)
	input.RazorpayCutPercent = f64(2)
	input.DeliveryFee = f64(50)

	_, err = svc.Create(context.Background(), "tok", input)
	require.NoError(t, err)

	payload, ok := up.lastPayload.(productPayload)
	require.True(t, ok)
	require.NotNil(t, payload.TotalCostBeforeMarkup)
	require.NotNil(t, payload.CalculatedSellingPrice)
	assert.InDelta(t, 1100, *payload.TotalCostBeforeMarkup, 0.0001)
	assert.InDelta(t, 2200, *payload.CalculatedSellingPrice, 0.0001)
}

func TestCreateWithoutCostBlockOmitsDerivedFields(t *testing.T) {
	up := &stubProductUpstream{product: &upstream.Product{ID: "p1"}}
	svc, err := NewService(up)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "tok", validInput())
	require.NoError(t, err)

	payload, ok := up.lastPayload.(productPayload)
	require.True(t, ok)
	assert.Nil(t, payload.TotalCostBeforeMarkup)
	assert.Nil(t, payload.CalculatedSellingPrice)
}

func TestCreateRejectsNegativeCostInputs(t *testing.T) {
	svc, err := NewService(&stubProductUpstream{})
	require.NoError(t, err)

	input := validInput()
	input.BuyPrice = f64(-1)

	_, err = svc.Create(context.Background(), "tok", input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateRecomputesWithPartialCostBlock(t *testing.T) {
	up := &stubProductUpstream{product: &upstream.Product{ID: "p1"}}
	svc, err := NewService(up)
	require.NoError(t, err)

	// Only buy price supplied; missing percentages and fee default to zero.
	input := validInput()
	input.BuyPrice = f64(500)

	_, err = svc.Update(context.Background(), "tok", "p1", input)
	require.NoError(t, err)

	payload, ok := up.lastPayload.(productPayload)
	require.True(t, ok)
	require.NotNil(t, payload.TotalCostBeforeMarkup)
	assert.InDelta(t, 500, *payload.TotalCostBeforeMarkup, 0.0001)
	assert.InDelta(t, 1000, *payload.CalculatedSellingPrice, 0.0001)
}

func TestOperationsRequireProductID(t *testing.T) {
	svc, err := NewService(&stubProductUpstream{})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "tok", "  ")
	require.Error(t, err)

	_, err = svc.Update(context.Background(), "tok", "", validInput())
	require.Error(t, err)

	_, err = svc.Delete(context.Background(), "tok", "")
	require.Error(t, err)

	_, err = svc.Deactivate(context.Background(), "tok", "")
	require.Error(t, err)

	_, err = svc.Reactivate(context.Background(), "tok", "")
	require.Error(t, err)
}

func TestUploadTempValidatesArguments(t *testing.T) {
	svc, err := NewService(&stubProductUpstream{})
	require.NoError(t, err)

	_, err = svc.UploadTemp(context.Background(), "tok", "", nil)
	require.Error(t, err)

	_, err = svc.UploadTemp(context.Background(), "tok", "ring.jpg", nil)
	require.Error(t, err)
}

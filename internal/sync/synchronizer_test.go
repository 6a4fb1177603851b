package sync

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

type stubUpstream struct {
	addCartErr   error
	addCartCalls int

	cart     []upstream.CartItem
	cartErr  error
	fetches  int
	removed  []upstream.CartItem
	remErr   error
	incItems []upstream.CartItem
	incErr   error
	decItems []upstream.CartItem
	decErr   error

	wishlist    []upstream.Product
	wishErr     error
	wishAdd     []upstream.Product
	wishAddErr  error
	wishRemoved []upstream.Product
	wishRemErr  error
}

func (s *stubUpstream) AddToCart(ctx context.Context, token, productID string, quantity int) error {
	s.addCartCalls++
	return s.addCartErr
}

func (s *stubUpstream) FetchCart(ctx context.Context, token string) ([]upstream.CartItem, error) {
	s.fetches++
	return s.cart, s.cartErr
}

func (s *stubUpstream) RemoveFromCart(ctx context.Context, token, productID string) ([]upstream.CartItem, error) {
	return s.removed, s.remErr
}

func (s *stubUpstream) IncreaseQuantity(ctx context.Context, token, productID string) ([]upstream.CartItem, error) {
	return s.incItems, s.incErr
}

func (s *stubUpstream) DecreaseQuantity(ctx context.Context, token, productID string) ([]upstream.CartItem, error) {
	return s.decItems, s.decErr
}

func (s *stubUpstream) AddToWishlist(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	return s.wishAdd, s.wishAddErr
}

func (s *stubUpstream) FetchWishlist(ctx context.Context, token string) ([]upstream.Product, error) {
	return s.wishlist, s.wishErr
}

func (s *stubUpstream) RemoveFromWishlist(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	return s.wishRemoved, s.wishRemErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func cartOf(ids ...string) []upstream.CartItem {
	items := make([]upstream.CartItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, upstream.CartItem{Product: upstream.Product{ID: id}, Quantity: 1})
	}
	return items
}

func wishlistOf(ids ...string) []upstream.Product {
	products := make([]upstream.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, upstream.Product{ID: id})
	}
	return products
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(nil, testLogger())
	require.Error(t, err)

	_, err = New(&stubUpstream{}, nil)
	require.Error(t, err)
}

func TestRefreshSeedsMirror(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1"), wishlist: wishlistOf("p2", "p3")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	snap, err := s.Refresh(context.Background(), "sess", "tok")
	require.NoError(t, err)
	assert.Len(t, snap.CartItems, 1)
	assert.Len(t, snap.WishlistItems, 2)

	again := s.Snapshot("sess")
	assert.Equal(t, snap.CartItems, again.CartItems)
	assert.Equal(t, snap.WishlistItems, again.WishlistItems)
}

func TestAddToCartRefetchesAndHintsOpen(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1", "p2")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	result, err := s.AddToCart(context.Background(), "sess", "tok", "p2")
	require.NoError(t, err)
	assert.True(t, result.OpenCart)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, up.addCartCalls)
	assert.Equal(t, 1, up.fetches)
}

func TestMutationReplacesMirrorWholesale(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1", "p2", "p3")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), "sess", "tok")
	require.NoError(t, err)

	up.removed = cartOf("p3")
	items, err := s.RemoveFromCart(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p3", items[0].Product.ID)

	// The mirror is the response list, not a local edit of the old one.
	assert.Equal(t, items, s.Snapshot("sess").CartItems)
}

func TestFailedMutationLeavesMirrorUntouched(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), "sess", "tok")
	require.NoError(t, err)
	before := s.Snapshot("sess")

	up.incErr = pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
	_, err = s.IncreaseQuantity(context.Background(), "sess", "tok", "p1")
	require.Error(t, err)

	assert.Equal(t, before.CartItems, s.Snapshot("sess").CartItems)
}

func TestAddToCartAbortsOnRefetchFailure(t *testing.T) {
	up := &stubUpstream{cartErr: pkgerrors.New(pkgerrors.CodeDependency, "fetch failed")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "sess", "tok", "p1")
	require.Error(t, err)
	assert.Empty(t, s.Snapshot("sess").CartItems)
}

func TestDecreaseMirrorsWhateverUpstreamDecides(t *testing.T) {
	// Some deployments remove a quantity-1 line...
	up := &stubUpstream{decItems: []upstream.CartItem{}}
	s, err := New(up, testLogger())
	require.NoError(t, err)
	items, err := s.DecreaseQuantity(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// ...others clamp it at one. Both answers are mirrored verbatim.
	up.decItems = cartOf("p1")
	items, err = s.DecreaseQuantity(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStaleResponseDiscarded(t *testing.T) {
	m := &mirror{}

	first := nextSeq(m, collectionCart)
	second := nextSeq(m, collectionCart)

	// The later-issued request's response lands first.
	applyCart(m, second, cartOf("newer"))
	applyCart(m, first, cartOf("older"))

	require.Len(t, m.cart, 1)
	assert.Equal(t, "newer", m.cart[0].Product.ID)
	assert.Equal(t, second, m.cartApplied)
}

func TestStaleWishlistResponseDiscarded(t *testing.T) {
	m := &mirror{}

	first := nextSeq(m, collectionWishlist)
	second := nextSeq(m, collectionWishlist)

	applyWishlist(m, second, wishlistOf("newer"))
	applyWishlist(m, first, wishlistOf("older"))

	require.Len(t, m.wishlist, 1)
	assert.Equal(t, "newer", m.wishlist[0].ID)
}

func TestSequencesIndependentPerCollection(t *testing.T) {
	up := &stubUpstream{
		cart:     cartOf("c1"),
		wishAdd:  wishlistOf("w1"),
		wishlist: wishlistOf("w1"),
	}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "sess", "tok", "c1")
	require.NoError(t, err)
	_, err = s.AddToWishlist(context.Background(), "sess", "tok", "w1")
	require.NoError(t, err)

	snap := s.Snapshot("sess")
	assert.Len(t, snap.CartItems, 1)
	assert.Len(t, snap.WishlistItems, 1)
}

func TestMoveToCartHappyPath(t *testing.T) {
	up := &stubUpstream{
		cart:        cartOf("p1"),
		wishRemoved: wishlistOf(),
	}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	outcome, err := s.MoveToCart(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)
	assert.True(t, outcome.RemovedFromWishlist)
	assert.Empty(t, outcome.RemovalError)
	assert.Len(t, outcome.CartItems, 1)
	assert.Empty(t, outcome.WishlistItems)
}

func TestMoveToCartAbortsWhenAddFails(t *testing.T) {
	up := &stubUpstream{addCartErr: pkgerrors.New(pkgerrors.CodeDependency, "add failed")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.MoveToCart(context.Background(), "sess", "tok", "p1")
	require.Error(t, err)
	assert.Equal(t, 0, up.fetches)
}

func TestMoveToCartReportsPartialFailure(t *testing.T) {
	up := &stubUpstream{
		cart:       cartOf("p1"),
		wishRemErr: pkgerrors.New(pkgerrors.CodeDependency, "removal failed"),
		wishlist:   wishlistOf("p1"),
	}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	// Seed the wishlist so the outcome can show the item still present.
	_, err = s.Refresh(context.Background(), "sess", "tok")
	require.NoError(t, err)

	outcome, err := s.MoveToCart(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err, "partial failure is an outcome, not an error")
	assert.False(t, outcome.RemovedFromWishlist)
	assert.NotEmpty(t, outcome.RemovalError)
	assert.Len(t, outcome.CartItems, 1)
	require.Len(t, outcome.WishlistItems, 1)
	assert.Equal(t, "p1", outcome.WishlistItems[0].ID)
}

func TestSessionsIsolated(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "alice", "tok-a", "p1")
	require.NoError(t, err)

	assert.Len(t, s.Snapshot("alice").CartItems, 1)
	assert.Empty(t, s.Snapshot("bob").CartItems)
}

func TestDropDiscardsMirror(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)

	s.Drop("sess")
	assert.Empty(t, s.Snapshot("sess").CartItems)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	up := &stubUpstream{cart: cartOf("p1")}
	s, err := New(up, testLogger())
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "sess", "tok", "p1")
	require.NoError(t, err)

	snap := s.Snapshot("sess")
	snap.CartItems[0].Quantity = 99

	assert.Equal(t, 1, s.Snapshot("sess").CartItems[0].Quantity)
}

// Package sync mirrors the two server-owned collections — cart and wishlist —
// for each gateway session. The upstream commerce API is authoritative: every
// mutation replaces the local mirror wholesale with the list the upstream
// returns, and a failed call leaves the mirror untouched.
package sync

import (
	"context"
	stdsync "sync"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

// Upstream is the slice of the commerce API the synchronizer needs.
type Upstream interface {
	AddToCart(ctx context.Context, token, productID string, quantity int) error
	FetchCart(ctx context.Context, token string) ([]upstream.CartItem, error)
	RemoveFromCart(ctx context.Context, token, productID string) ([]upstream.CartItem, error)
	IncreaseQuantity(ctx context.Context, token, productID string) ([]upstream.CartItem, error)
	DecreaseQuantity(ctx context.Context, token, productID string) ([]upstream.CartItem, error)
	AddToWishlist(ctx context.Context, token, productID string) ([]upstream.Product, error)
	FetchWishlist(ctx context.Context, token string) ([]upstream.Product, error)
	RemoveFromWishlist(ctx context.Context, token, productID string) ([]upstream.Product, error)
}

// Snapshot is the current mirror for one session.
type Snapshot struct {
	CartItems     []upstream.CartItem `json:"cart_items"`
	WishlistItems []upstream.Product  `json:"wishlist_items"`
}

// CartResult carries the refreshed cart plus the UI hint to open the cart
// panel after an add. Panel state itself never leaves the client.
type CartResult struct {
	Items    []upstream.CartItem `json:"items"`
	OpenCart bool                `json:"open_cart"`
}

// MoveOutcome reports the two-phase wishlist-to-cart move. The phases are not
// transactional: when RemovedFromWishlist is false the product is, by design,
// present in both lists until a retry succeeds.
type MoveOutcome struct {
	CartItems           []upstream.CartItem `json:"cart_items"`
	WishlistItems       []upstream.Product  `json:"wishlist_items"`
	RemovedFromWishlist bool                `json:"removed_from_wishlist"`
	RemovalError        string              `json:"removal_error,omitempty"`
}

// mirror holds one session's collections plus per-collection sequence
// counters. A response is applied only when no later-issued request has
// already been applied, so the last issued writer wins regardless of network
// reordering.
type mirror struct {
	mu stdsync.Mutex

	cartSeq     uint64
	cartApplied uint64
	cart        []upstream.CartItem

	wishSeq     uint64
	wishApplied uint64
	wishlist    []upstream.Product
}

// Synchronizer owns the session mirrors. It is safe for concurrent use; each
// collection has a single serialization point while still letting upstream
// calls for different sessions and collections overlap.
type Synchronizer struct {
	upstream Upstream
	logg     *logger.Logger

	mu      stdsync.RWMutex
	mirrors map[string]*mirror
}

// New builds a Synchronizer over the given upstream.
func New(up Upstream, logg *logger.Logger) (*Synchronizer, error) {
	if up == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream client is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Synchronizer{
		upstream: up,
		logg:     logg,
		mirrors:  make(map[string]*mirror),
	}, nil
}

func (s *Synchronizer) mirrorFor(sessionID string) *mirror {
	s.mu.RLock()
	m, ok := s.mirrors[sessionID]
	s.mu.RUnlock()
	if ok {
		return m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok = s.mirrors[sessionID]; ok {
		return m
	}
	m = &mirror{}
	s.mirrors[sessionID] = m
	return m
}

// Drop discards a session's mirror, used on logout.
func (s *Synchronizer) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.mirrors, sessionID)
	s.mu.Unlock()
}

// Snapshot returns the current mirror without upstream IO.
func (s *Synchronizer) Snapshot(sessionID string) Snapshot {
	m := s.mirrorFor(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		CartItems:     cloneCart(m.cart),
		WishlistItems: cloneWishlist(m.wishlist),
	}
}

// Refresh fetches both collections from the upstream, seeding the mirror on
// session attach.
func (s *Synchronizer) Refresh(ctx context.Context, sessionID, token string) (Snapshot, error) {
	m := s.mirrorFor(sessionID)

	cartSeq := nextSeq(m, collectionCart)
	items, err := s.upstream.FetchCart(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	applyCart(m, cartSeq, items)

	wishSeq := nextSeq(m, collectionWishlist)
	products, err := s.upstream.FetchWishlist(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	applyWishlist(m, wishSeq, products)

	return s.Snapshot(sessionID), nil
}

// AddToCart requests one unit of a product, then refetches the authoritative
// cart. On success the result carries the open-cart hint.
func (s *Synchronizer) AddToCart(ctx context.Context, sessionID, token, productID string) (CartResult, error) {
	m := s.mirrorFor(sessionID)
	seq := nextSeq(m, collectionCart)

	if err := s.upstream.AddToCart(ctx, token, productID, 1); err != nil {
		s.logg.Error(ctx, "cart.add failed", err)
		return CartResult{}, err
	}
	items, err := s.upstream.FetchCart(ctx, token)
	if err != nil {
		s.logg.Error(ctx, "cart.refetch after add failed", err)
		return CartResult{}, err
	}

	applyCart(m, seq, items)
	return CartResult{Items: s.Snapshot(sessionID).CartItems, OpenCart: true}, nil
}

// RemoveFromCart removes a line and mirrors the returned cart.
func (s *Synchronizer) RemoveFromCart(ctx context.Context, sessionID, token, productID string) ([]upstream.CartItem, error) {
	return s.mutateCart(ctx, sessionID, productID, func(ctx context.Context) ([]upstream.CartItem, error) {
		return s.upstream.RemoveFromCart(ctx, token, productID)
	})
}

// IncreaseQuantity bumps a line by one unit and mirrors the returned cart.
func (s *Synchronizer) IncreaseQuantity(ctx context.Context, sessionID, token, productID string) ([]upstream.CartItem, error) {
	return s.mutateCart(ctx, sessionID, productID, func(ctx context.Context) ([]upstream.CartItem, error) {
		return s.upstream.IncreaseQuantity(ctx, token, productID)
	})
}

// DecreaseQuantity reduces a line by one unit and mirrors the returned cart.
// Whether a quantity-1 line disappears or clamps is the upstream's call; no
// local clamping happens here.
func (s *Synchronizer) DecreaseQuantity(ctx context.Context, sessionID, token, productID string) ([]upstream.CartItem, error) {
	return s.mutateCart(ctx, sessionID, productID, func(ctx context.Context) ([]upstream.CartItem, error) {
		return s.upstream.DecreaseQuantity(ctx, token, productID)
	})
}

func (s *Synchronizer) mutateCart(ctx context.Context, sessionID, productID string, call func(context.Context) ([]upstream.CartItem, error)) ([]upstream.CartItem, error) {
	m := s.mirrorFor(sessionID)
	seq := nextSeq(m, collectionCart)

	items, err := call(ctx)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "product_id", productID), "cart mutation failed", err)
		return nil, err
	}

	applyCart(m, seq, items)
	return s.Snapshot(sessionID).CartItems, nil
}

// AddToWishlist adds a product and mirrors the returned wishlist.
func (s *Synchronizer) AddToWishlist(ctx context.Context, sessionID, token, productID string) ([]upstream.Product, error) {
	return s.mutateWishlist(ctx, sessionID, productID, func(ctx context.Context) ([]upstream.Product, error) {
		return s.upstream.AddToWishlist(ctx, token, productID)
	})
}

// RemoveFromWishlist removes a product and mirrors the returned wishlist.
func (s *Synchronizer) RemoveFromWishlist(ctx context.Context, sessionID, token, productID string) ([]upstream.Product, error) {
	return s.mutateWishlist(ctx, sessionID, productID, func(ctx context.Context) ([]upstream.Product, error) {
		return s.upstream.RemoveFromWishlist(ctx, token, productID)
	})
}

func (s *Synchronizer) mutateWishlist(ctx context.Context, sessionID, productID string, call func(context.Context) ([]upstream.Product, error)) ([]upstream.Product, error) {
	m := s.mirrorFor(sessionID)
	seq := nextSeq(m, collectionWishlist)

	products, err := call(ctx)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "product_id", productID), "wishlist mutation failed", err)
		return nil, err
	}

	applyWishlist(m, seq, products)
	return s.Snapshot(sessionID).WishlistItems, nil
}

// MoveToCart is the explicit two-phase wishlist-to-cart move: add to cart
// first, then remove from the wishlist. A failed first phase aborts; a failed
// second phase is reported in the outcome while the cart add stands.
func (s *Synchronizer) MoveToCart(ctx context.Context, sessionID, token, productID string) (MoveOutcome, error) {
	added, err := s.AddToCart(ctx, sessionID, token, productID)
	if err != nil {
		return MoveOutcome{}, err
	}

	outcome := MoveOutcome{
		CartItems:           added.Items,
		RemovedFromWishlist: true,
	}

	wishlist, err := s.RemoveFromWishlist(ctx, sessionID, token, productID)
	if err != nil {
		outcome.RemovedFromWishlist = false
		outcome.RemovalError = err.Error()
		outcome.WishlistItems = s.Snapshot(sessionID).WishlistItems
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "move-to-cart left item on wishlist")
		return outcome, nil
	}

	outcome.WishlistItems = wishlist
	return outcome, nil
}

type collection int

const (
	collectionCart collection = iota
	collectionWishlist
)

func nextSeq(m *mirror, col collection) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if col == collectionCart {
		m.cartSeq++
		return m.cartSeq
	}
	m.wishSeq++
	return m.wishSeq
}

// applyCart installs a cart response unless a later-issued request already
// landed.
func applyCart(m *mirror, seq uint64, items []upstream.CartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq <= m.cartApplied {
		return
	}
	m.cartApplied = seq
	m.cart = cloneCart(items)
}

func applyWishlist(m *mirror, seq uint64, products []upstream.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq <= m.wishApplied {
		return
	}
	m.wishApplied = seq
	m.wishlist = cloneWishlist(products)
}

func cloneCart(items []upstream.CartItem) []upstream.CartItem {
	if items == nil {
		return []upstream.CartItem{}
	}
	return append([]upstream.CartItem(nil), items...)
}

func cloneWishlist(products []upstream.Product) []upstream.Product {
	if products == nil {
		return []upstream.Product{}
	}
	return append([]upstream.Product(nil), products...)
}

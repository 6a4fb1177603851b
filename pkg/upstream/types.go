package upstream

// Wire types mirror the commerce API's JSON verbatim. This package is the only
// place upstream payloads are decoded; everything above it works with these
// structs.

// ProductImage is one entry of a product's ordered media list.
type ProductImage struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Type string `json:"type,omitempty"`
}

// ProductMeta carries occasion/style tags used by storefront filters.
type ProductMeta struct {
	Occasion []string `json:"occasion"`
	Style    []string `json:"style"`
}

// Product is the catalog entity as the commerce API returns it. The cost
// fields at the bottom are admin-only and omitted from storefront responses.
type Product struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`

	Category string `json:"category"`
	Material string `json:"material"`
	Stock    int    `json:"stock"`
	SKU      string `json:"sku,omitempty"`

	Images []ProductImage `json:"images"`

	IsNewArrival bool `json:"isNewArrival,omitempty"`
	IsBestSeller bool `json:"isBestSeller,omitempty"`
	IsActive     bool `json:"isActive,omitempty"`
	InStock      bool `json:"inStock,omitempty"`

	Meta *ProductMeta `json:"meta,omitempty"`

	BuyPrice           *float64 `json:"buyPrice,omitempty"`
	GSTPercent         *float64 `json:"gstPercent,omitempty"`
	RazorpayCutPercent *float64 `json:"razorpayCutPercent,omitempty"`
	DeliveryFee        *float64 `json:"deliveryFee,omitempty"`

	TotalCostBeforeMarkup  *float64 `json:"totalCostBeforeMarkup,omitempty"`
	CalculatedSellingPrice *float64 `json:"calculatedSellingPrice,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CartItem is a product reference plus a quantity. Identity is the product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderItem is a line of an order referencing a product snapshot.
type OrderItem struct {
	Product         Product `json:"product"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty"`
	Quantity        int     `json:"quantity"`
	FinalPrice      float64 `json:"finalPrice"`
}

// ShippingAddress is the delivery block attached to an order.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// PaymentInfo mirrors the upstream's payment block. The razorpay ids are
// opaque to the gateway.
type PaymentInfo struct {
	Provider          string `json:"provider"`
	RazorpayOrderID   string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"razorpaySignature,omitempty"`
	Status            string `json:"status"`
}

// Order statuses as the upstream defines them. The gateway never validates
// transitions; the list exists so requests carry a known value.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// KnownOrderStatus reports whether status is one the upstream documents.
func KnownOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is read-only from the gateway's perspective apart from status
// transition requests.
type Order struct {
	ID              string          `json:"_id"`
	User            string          `json:"user"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	ShippingFee     float64         `json:"shippingFee"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// User is the account entity managed upstream.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UploadedFile is one object-store entry returned by the temp upload endpoint.
type UploadedFile struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Type string `json:"type,omitempty"`
}

// AuthResult is the upstream's login/register payload: an opaque session
// token plus the authenticated user.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

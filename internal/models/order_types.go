package models

import "time"

// Order is the model for the 'orders' table.
// An order carries four independent status dimensions; each one is a closed
// enum with its own transition table (see order_status.go).
type Order struct {
	ID              int64   `json:"id" db:"id"`
	UserID          int64   `json:"userId" db:"user_id"`
	TotalPrice      float64 `json:"totalPrice" db:"total_price"`
	ShippingAddress string  `json:"shippingAddress" db:"shipping_address"`

	OrderStatus          OrderStatus          `json:"orderStatus" db:"order_status"`
	PaymentStatus        PaymentStatus        `json:"paymentStatus" db:"payment_status"`
	ReturnStatus         ReturnStatus         `json:"returnStatus" db:"return_status"`
	ReturnApprovalStatus ReturnApprovalStatus `json:"returnApprovalStatus" db:"return_approval_status"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated manually from order_items (not a DB column)
	Items []OrderItem `json:"products,omitempty" db:"-"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"` // Price at the time of purchase

	// Joined product fields for populated responses (not in the table)
	ProductTitle string  `json:"productTitle,omitempty" db:"-"`
	ProductImage string  `json:"productImage,omitempty" db:"-"`
	ProductPrice float64 `json:"productPrice,omitempty" db:"-"`
}

// CategoryTotal is one row of the category revenue report.
type CategoryTotal struct {
	Category   string  `json:"category"`
	TotalPrice float64 `json:"totalPrice"`
}

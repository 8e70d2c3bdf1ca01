package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state stored in orders.status
type OrderStatus string

const (
	OrderStatusPendingPayment  OrderStatus = "PENDING_PAYMENT"
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusShipped         OrderStatus = "SHIPPED"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusCanceledTimeout OrderStatus = "CANCELED_TIMEOUT"
)

// Order represents one customer order; all of its items belong to a single merchant
type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is an order line. Purchased price and snapshot columns are copies
// taken when the line is written and never follow the source rows.
type OrderItem struct {
	ID                   uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID              uint            `json:"order_id" gorm:"not null;index"`
	ProductID            uint            `json:"product_id" gorm:"not null"`
	ProductVariantID     uint            `json:"product_variant_id" gorm:"not null"`
	Quantity             int             `json:"quantity" gorm:"not null"`
	PurchasedPrice       decimal.Decimal `json:"purchased_price" gorm:"type:decimal(10,2);not null"`
	SnapshotProductName  string          `json:"snapshot_product_name" gorm:"type:varchar(255)"`
	SnapshotVariantColor *string         `json:"snapshot_variant_color" gorm:"type:varchar(50)"`
	SnapshotVariantSize  *string         `json:"snapshot_variant_size" gorm:"type:varchar(20)"`
	SnapshotVariantImage *string         `json:"snapshot_variant_image" gorm:"type:varchar(255)"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal returns purchased price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PurchasedPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

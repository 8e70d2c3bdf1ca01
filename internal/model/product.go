package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductStatusActive is the only status the seeder assigns
const ProductStatusActive = "ACTIVE"

// Specification is one key/value pair of products.specifications
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is a row of the products table.
// MinPrice and TotalStock are aggregates of the variants that the seeder
// leaves at zero.
type Product struct {
	ID             uint                                `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID        uint                                `json:"owner_id" gorm:"not null;index"`
	Name           string                              `json:"name" gorm:"type:varchar(255);not null"`
	Description    string                              `json:"description" gorm:"type:text"`
	Category       string                              `json:"category" gorm:"type:varchar(100);index"`
	DefaultImage   *string                             `json:"default_image" gorm:"type:varchar(255)"`
	Features       datatypes.JSONType[[]string]        `json:"features"`
	Specifications datatypes.JSONType[[]Specification] `json:"specifications"`
	Status         string                              `json:"status" gorm:"type:varchar(20);not null"`
	MinPrice       decimal.Decimal                     `json:"min_price" gorm:"type:decimal(10,2);not null;default:0"`
	TotalStock     int                                 `json:"total_stock" gorm:"not null;default:0"`
	CreatedAt      time.Time                           `json:"created_at"`
	UpdatedAt      time.Time                           `json:"updated_at"`
	Variants       []ProductVariant                    `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductVariant is a row of the product_variants table
type ProductVariant struct {
	ID               uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID        uint            `json:"product_id" gorm:"not null;index"`
	Color            *string         `json:"color" gorm:"type:varchar(50)"`
	Size             *string         `json:"size" gorm:"type:varchar(20)"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image            *string         `json:"image" gorm:"type:varchar(255)"`
	StockQuantity    int             `json:"stock_quantity" gorm:"not null;default:0"`
	ReservedQuantity int             `json:"reserved_quantity" gorm:"not null;default:0"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (ProductVariant) TableName() string { return "product_variants" }

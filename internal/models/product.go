package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const GalleryMaxEntries = 6

type GalleryItem struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

// Gallery is stored as a JSON text column.
type Gallery []GalleryItem

func (g Gallery) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Gallery) Scan(src any) error {
	if src == nil {
		*g = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("unsupported gallery column type %T", src)
	}
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:255;not null;uniqueIndex:uniq_products_user_name" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`

	UserID uint `gorm:"not null;uniqueIndex:uniq_products_user_name" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Legacy single category, kept for backwards compatibility with older rows.
	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	Categories []Category `gorm:"many2many:product_categories;" json:"categories"`

	Image   string  `gorm:"size:512" json:"image"`
	Gallery Gallery `gorm:"type:text" json:"gallery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Capital is the inventory value of the row, price times stock.
func (p *Product) Capital() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// ProductCategory is the tagging join row. Declared explicitly so the join
// table carries its own timestamps.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

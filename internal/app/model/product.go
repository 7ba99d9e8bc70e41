package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the central catalog entity. Taxonomy references are all nullable
// and become null when the referenced row is deleted. ImageURL/VideoURL are
// the oldest media shape, kept as the last fallback of the resolution chain.
type Product struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	Name             string           `gorm:"size:200;not null" json:"name"`
	Slug             string           `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	ShortDescription string           `gorm:"size:300" json:"short_description"`
	Description      string           `gorm:"type:text" json:"description"`
	CategoryID       *uint            `gorm:"index" json:"category_id"`
	Category         *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubcategoryID    *uint            `gorm:"index" json:"subcategory_id"`
	Subcategory      *Subcategory     `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	BrandID          *uint            `gorm:"index" json:"brand_id"`
	Brand            *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	SupplierID       *uint            `gorm:"index" json:"supplier_id"`
	Supplier         *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	StatusID         *uint            `gorm:"index" json:"status_id"`
	Status           *Status          `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Price            decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
	SalePrice        *decimal.Decimal `gorm:"type:numeric(10,2)" json:"sale_price"`
	Stock            int              `gorm:"default:0" json:"stock"`
	SKU              string           `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Weight           *decimal.Decimal `gorm:"type:numeric(6,2)" json:"weight"` // kg
	Dimensions       string           `gorm:"size:100" json:"dimensions"`      // Alto x Ancho x Largo en cm
	OriginCountry    string           `gorm:"size:100" json:"origin_country"`
	ImageURL         string           `json:"image_url"`
	VideoURL         string           `json:"video_url"`
	Available        bool             `gorm:"default:true" json:"available"`
	Active           bool             `gorm:"default:true" json:"active"`
	Featured         bool             `gorm:"default:false" json:"featured"`
	OnSale           bool             `gorm:"default:false" json:"on_sale"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	Medias  []ProductMedia `gorm:"foreignKey:ProductID" json:"-"`
	Images  []ProductImage `gorm:"foreignKey:ProductID" json:"-"`
	Videos  []ProductVideo `gorm:"foreignKey:ProductID" json:"-"`
	Ratings []Rating       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// HasDiscount reports whether a sale price is set and strictly below the
// regular price.
func (p *Product) HasDiscount() bool {
	return p.SalePrice != nil && p.SalePrice.IsPositive() && p.SalePrice.LessThan(p.Price)
}

// DiscountPercent is floor(100 * (price - sale_price) / price), 0 without a
// discount.
func (p *Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	pct := p.Price.Sub(*p.SalePrice).Mul(decimal.NewFromInt(100)).Div(p.Price)
	return int(pct.IntPart())
}

// FinalPrice is the sale price when discounted, otherwise the regular price.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Visible is the non-negotiable predicate for every public-facing lookup.
func (p *Product) Visible() bool {
	return p.Active && p.Available
}

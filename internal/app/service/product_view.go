package service

import (
	"time"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/shopspring/decimal"
)

// Badge labels in their fixed display order.
const (
	BadgeOnSale   = "ON SALE"
	BadgeFeatured = "FEATURED"
	BadgeInactive = "INACTIVE"
)

// Badges lists the product's merchandising badges. Only true conditions
// produce a badge, always in sale, featured, inactive order.
func Badges(p *model.Product) []string {
	badges := []string{}
	if p.OnSale {
		badges = append(badges, BadgeOnSale)
	}
	if p.Featured {
		badges = append(badges, BadgeFeatured)
	}
	if !p.Active {
		badges = append(badges, BadgeInactive)
	}
	return badges
}

// ProductSummary is the listing card shape: stored fields plus everything
// derived at serialization time. Nothing here is persisted.
type ProductSummary struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	ShortDescription string           `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price,omitempty"`
	FinalPrice       decimal.Decimal  `json:"final_price"`
	HasDiscount      bool             `json:"has_discount"`
	DiscountPercent  int              `json:"discount_percent"`
	Stock            int              `json:"stock"`
	InStock          bool             `json:"in_stock"`
	Featured         bool             `json:"featured"`
	OnSale           bool             `json:"on_sale"`
	Badges           []string         `json:"badges"`
	MainImage        *MediaRef        `json:"main_image,omitempty"`
	CategoryName     string           `json:"category_name,omitempty"`
	CategorySlug     string           `json:"category_slug,omitempty"`
	BrandName        string           `json:"brand_name,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func NewProductSummary(p *model.Product) ProductSummary {
	summary := ProductSummary{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		FinalPrice:       p.FinalPrice(),
		HasDiscount:      p.HasDiscount(),
		DiscountPercent:  p.DiscountPercent(),
		Stock:            p.Stock,
		InStock:          p.InStock(),
		Featured:         p.Featured,
		OnSale:           p.OnSale,
		Badges:           Badges(p),
		MainImage:        ResolveMainImage(p),
		CreatedAt:        p.CreatedAt,
	}
	if p.Category != nil {
		summary.CategoryName = p.Category.Name
		summary.CategorySlug = p.Category.Slug
	}
	if p.Brand != nil {
		summary.BrandName = p.Brand.Name
	}
	return summary
}

// SearchResult is the lighter shape returned by quick search.
type SearchResult struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	FinalPrice decimal.Decimal `json:"final_price"`
	ImageURL   string          `json:"image_url,omitempty"`
}

func NewSearchResult(p *model.Product) SearchResult {
	result := SearchResult{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		FinalPrice: p.FinalPrice(),
	}
	if ref := ResolveMainImage(p); ref != nil {
		result.ImageURL = ref.URL
	}
	return result
}

// CatalogPage is the listing envelope.
type CatalogPage struct {
	Items       []ProductSummary `json:"items"`
	TotalCount  int64            `json:"total_count"`
	PageNumber  int              `json:"page_number"`
	TotalPages  int              `json:"total_pages"`
	HasNext     bool             `json:"has_next"`
	HasPrevious bool             `json:"has_previous"`
}

// ProductDetail is the full product page shape: the stored product, its
// derived fields, resolved galleries, ratings and related products.
type ProductDetail struct {
	Product         *model.Product           `json:"product"`
	FinalPrice      decimal.Decimal          `json:"final_price"`
	HasDiscount     bool                     `json:"has_discount"`
	DiscountPercent int                      `json:"discount_percent"`
	InStock         bool                     `json:"in_stock"`
	Badges          []string                 `json:"badges"`
	MainImage       *MediaRef                `json:"main_image,omitempty"`
	MainVideo       *MediaRef                `json:"main_video,omitempty"`
	Images          []MediaRef               `json:"images"`
	Videos          []MediaRef               `json:"videos"`
	Ratings         []model.Rating           `json:"ratings"`
	RatingSummary   repository.RatingSummary `json:"rating_summary"`
	Related         []ProductSummary         `json:"related"`
}

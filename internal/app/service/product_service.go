package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Manulynx/kitaluro/internal/app/model"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"github.com/Manulynx/kitaluro/pkg/slug"
	"github.com/Manulynx/kitaluro/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrNameRequired     = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrInvalidSalePrice = errors.New("sale price must be positive and below the regular price")
	ErrInvalidStock     = errors.New("stock cannot be negative")
	ErrSKUExhausted     = errors.New("could not generate a unique SKU")
	ErrSKUTaken         = errors.New("sku already in use")
	ErrMediaNotFound    = errors.New("media entry not found")
	ErrTaxonomyRef      = errors.New("referenced taxonomy entity does not exist")
)

// ProductInput is the typed write shape for the admin surface. OnSale is
// deliberately absent: it is always derived from SalePrice, and any value a
// caller submits is discarded.
type ProductInput struct {
	Name             string           `json:"name" binding:"required"`
	ShortDescription string           `json:"short_description"`
	Description      string           `json:"description"`
	CategoryID       *uint            `json:"category_id"`
	SubcategoryID    *uint            `json:"subcategory_id"`
	BrandID          *uint            `json:"brand_id"`
	SupplierID       *uint            `json:"supplier_id"`
	StatusID         *uint            `json:"status_id"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	Stock            int              `json:"stock"`
	SKU              string           `json:"sku"`
	Weight           *decimal.Decimal `json:"weight"`
	Dimensions       string           `json:"dimensions"`
	OriginCountry    string           `json:"origin_country"`
	ImageURL         string           `json:"image_url"`
	VideoURL         string           `json:"video_url"`
	Available        bool             `json:"available"`
	Active           bool             `json:"active"`
	Featured         bool             `json:"featured"`
}

type ImageInput struct {
	ImageURL  string `json:"image_url" binding:"required"`
	AltText   string `json:"alt_text"`
	Title     string `json:"title"`
	IsMain    bool   `json:"is_main"`
	SortOrder int    `json:"sort_order"`
}

type VideoInput struct {
	VideoURL     string `json:"video_url"`
	ExternalURL  string `json:"external_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title"`
	IsMain       bool   `json:"is_main"`
	SortOrder    int    `json:"sort_order"`
}

// GalleryDelta describes gallery changes applied atomically with a product
// write.
type GalleryDelta struct {
	AddImages      []ImageInput `json:"add_images"`
	AddVideos      []VideoInput `json:"add_videos"`
	RemoveImageIDs []uint       `json:"remove_image_ids"`
	RemoveVideoIDs []uint       `json:"remove_video_ids"`
	RemoveMediaIDs []uint       `json:"remove_media_ids"`
}

type ProductService interface {
	CreateProduct(input ProductInput, gallery GalleryDelta) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput, gallery GalleryDelta) (*model.Product, error)
	DeleteProduct(id uint) error
	GetProduct(id uint) (*model.Product, error)
	ListAll() ([]model.Product, error)
	AddImages(productID uint, images []ImageInput) error
	AddVideos(productID uint, videos []VideoInput) error
	RemoveMedia(productID uint, delta GalleryDelta) error
	ExportXLSX() ([]byte, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	mediaRepo    repository.MediaRepository
	categoryRepo repository.CategoryRepository
	subcatRepo   repository.SubcategoryRepository
	brandRepo    repository.BrandRepository
	supplierRepo repository.SupplierRepository
	statusRepo   repository.StatusRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	mediaRepo repository.MediaRepository,
	categoryRepo repository.CategoryRepository,
	subcatRepo repository.SubcategoryRepository,
	brandRepo repository.BrandRepository,
	supplierRepo repository.SupplierRepository,
	statusRepo repository.StatusRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		mediaRepo:    mediaRepo,
		categoryRepo: categoryRepo,
		subcatRepo:   subcatRepo,
		brandRepo:    brandRepo,
		supplierRepo: supplierRepo,
		statusRepo:   statusRepo,
	}
}

func validateInput(input *ProductInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if !input.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if input.SalePrice != nil {
		if !input.SalePrice.IsPositive() || !input.SalePrice.LessThan(input.Price) {
			return ErrInvalidSalePrice
		}
	}
	if input.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// resolveTaxonomy loads the referenced supplier and category names for SKU
// derivation and verifies every referenced taxonomy row exists.
func (s *productService) resolveTaxonomy(input *ProductInput) (supplierName, categoryName string, err error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(*input.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrTaxonomyRef
			}
			return "", "", err
		}
		categoryName = category.Name
	}
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.FindByID(*input.SupplierID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrTaxonomyRef
			}
			return "", "", err
		}
		supplierName = supplier.Name
	}
	if input.SubcategoryID != nil {
		if _, err := s.subcatRepo.FindByID(*input.SubcategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrTaxonomyRef
			}
			return "", "", err
		}
	}
	if input.BrandID != nil {
		if _, err := s.brandRepo.FindByID(*input.BrandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrTaxonomyRef
			}
			return "", "", err
		}
	}
	if input.StatusID != nil {
		if _, err := s.statusRepo.FindByID(*input.StatusID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrTaxonomyRef
			}
			return "", "", err
		}
	}
	return supplierName, categoryName, nil
}

// uniqueSlug derives a slug from the name, appending a numeric suffix on
// collision.
func (s *productService) uniqueSlug(name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.productRepo.ExistsSlug(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// uniqueSKU builds a SKU candidate and resolves pre-check collisions with a
// zero-padded counter suffix. The storage uniqueness constraint remains the
// authoritative guard; callers retry on a duplicate-key violation.
func (s *productService) uniqueSKU(supplierName, categoryName string, excludeID uint) (string, error) {
	base := BuildSKU(supplierName, categoryName, time.Now())

	exists, err := s.productRepo.ExistsSKU(base, excludeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	for counter := 1; counter <= skuMaxCounter; counter++ {
		candidate := fmt.Sprintf("%s-%02d", base, counter)
		exists, err := s.productRepo.ExistsSKU(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrSKUExhausted
}

func applyInput(product *model.Product, input *ProductInput) {
	product.Name = input.Name
	product.ShortDescription = input.ShortDescription
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.SubcategoryID = input.SubcategoryID
	product.BrandID = input.BrandID
	product.SupplierID = input.SupplierID
	product.StatusID = input.StatusID
	product.Price = input.Price
	product.SalePrice = input.SalePrice
	product.Stock = input.Stock
	product.Weight = input.Weight
	product.Dimensions = input.Dimensions
	product.OriginCountry = util.SanitizeCountry(input.OriginCountry)
	product.ImageURL = input.ImageURL
	product.VideoURL = input.VideoURL
	product.Available = input.Available
	product.Active = input.Active
	product.Featured = input.Featured
	// OnSale is derived, never taken from the caller.
	product.OnSale = input.SalePrice != nil &&
		input.SalePrice.IsPositive() && input.SalePrice.LessThan(input.Price)
}

func (s *productService) CreateProduct(input ProductInput, gallery GalleryDelta) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name": input.Name,
		"sku":  input.SKU,
	})

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	supplierName, categoryName, err := s.resolveTaxonomy(&input)
	if err != nil {
		return nil, err
	}

	product := &model.Product{}
	applyInput(product, &input)

	product.Slug, err = s.uniqueSlug(input.Name, 0)
	if err != nil {
		return nil, err
	}

	callerSKU := input.SKU != ""
	if callerSKU {
		product.SKU = input.SKU
	} else {
		product.SKU, err = s.uniqueSKU(supplierName, categoryName, 0)
		if err != nil {
			return nil, err
		}
	}

	// The uniqueness constraint is the real arbiter under concurrency: on a
	// duplicate-key violation regenerate with a fresh random suffix and try
	// again, a bounded number of times. A caller-supplied SKU is never
	// replaced; its conflict surfaces immediately.
	for attempt := 1; ; attempt++ {
		err = s.productRepo.Create(product)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"name": input.Name,
			})
			return nil, err
		}
		if callerSKU {
			return nil, ErrSKUTaken
		}
		if attempt >= skuMaxAttempts {
			logger.Error("SKU retries exhausted", err, map[string]interface{}{
				"name": input.Name,
				"sku":  product.SKU,
			})
			return nil, ErrSKUExhausted
		}
		logger.Warn("SKU collision on insert, regenerating", map[string]interface{}{
			"sku":     product.SKU,
			"attempt": attempt,
		})
		product.SKU, err = s.uniqueSKU(supplierName, categoryName, 0)
		if err != nil {
			return nil, err
		}
	}

	if err := s.applyGallery(product.ID, gallery); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
		"slug":       product.Slug,
	})
	return s.productRepo.FindByID(product.ID)
}

func (s *productService) UpdateProduct(id uint, input ProductInput, gallery GalleryDelta) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
		"name":       input.Name,
	})

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, _, err := s.resolveTaxonomy(&input); err != nil {
		return nil, err
	}

	renamed := existing.Name != input.Name
	applyInput(existing, &input)

	if renamed {
		existing.Slug, err = s.uniqueSlug(input.Name, id)
		if err != nil {
			return nil, err
		}
	}

	// An existing SKU is never regenerated; an explicit one replaces it.
	if input.SKU != "" {
		existing.SKU = input.SKU
	}

	if err := s.productRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if err := s.applyGallery(id, gallery); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.FindByID(id)
}

func (s *productService) applyGallery(productID uint, gallery GalleryDelta) error {
	if err := s.AddImages(productID, gallery.AddImages); err != nil {
		return err
	}
	if err := s.AddVideos(productID, gallery.AddVideos); err != nil {
		return err
	}
	return s.RemoveMedia(productID, GalleryDelta{
		RemoveImageIDs: gallery.RemoveImageIDs,
		RemoveVideoIDs: gallery.RemoveVideoIDs,
		RemoveMediaIDs: gallery.RemoveMediaIDs,
	})
}

func (s *productService) AddImages(productID uint, images []ImageInput) error {
	for _, in := range images {
		image := &model.ProductImage{
			ProductID: productID,
			ImageURL:  in.ImageURL,
			AltText:   in.AltText,
			Title:     in.Title,
			IsMain:    in.IsMain,
			SortOrder: in.SortOrder,
		}
		if err := s.mediaRepo.AddImage(image); err != nil {
			return err
		}
		if image.IsMain {
			if err := s.mediaRepo.DemoteMainImages(productID, image.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *productService) AddVideos(productID uint, videos []VideoInput) error {
	for _, in := range videos {
		video := &model.ProductVideo{
			ProductID:    productID,
			VideoURL:     in.VideoURL,
			ExternalURL:  in.ExternalURL,
			ThumbnailURL: in.ThumbnailURL,
			Title:        in.Title,
			IsMain:       in.IsMain,
			SortOrder:    in.SortOrder,
		}
		if err := s.mediaRepo.AddVideo(video); err != nil {
			return err
		}
		if video.IsMain {
			if err := s.mediaRepo.DemoteMainVideos(productID, video.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *productService) RemoveMedia(productID uint, delta GalleryDelta) error {
	for _, id := range delta.RemoveImageIDs {
		if err := s.mediaRepo.RemoveImage(productID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMediaNotFound
			}
			return err
		}
	}
	for _, id := range delta.RemoveVideoIDs {
		if err := s.mediaRepo.RemoveVideo(productID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMediaNotFound
			}
			return err
		}
	}
	for _, id := range delta.RemoveMediaIDs {
		if err := s.mediaRepo.RemoveLegacy(productID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMediaNotFound
			}
			return err
		}
	}
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

var exportHeader = []string{
	"ID", "Nombre", "SKU", "Slug", "Categoría", "Subcategoría", "Marca",
	"Proveedor", "Estatus", "Precio", "Precio oferta", "Stock", "Activo",
	"Disponible", "Destacado", "En oferta",
}

// ExportXLSX renders the full product list as a spreadsheet for the admin
// surface.
func (s *productService) ExportXLSX() ([]byte, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Productos"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	boolMark := func(b bool) string {
		if b {
			return "Sí"
		}
		return "No"
	}
	maybeName := func(name func() string, ok bool) string {
		if ok {
			return name()
		}
		return ""
	}

	for i := range products {
		p := &products[i]
		salePrice := ""
		if p.SalePrice != nil {
			salePrice = p.SalePrice.StringFixed(2)
		}
		row := []interface{}{
			p.ID, p.Name, p.SKU, p.Slug,
			maybeName(func() string { return p.Category.Name }, p.Category != nil),
			maybeName(func() string { return p.Subcategory.Name }, p.Subcategory != nil),
			maybeName(func() string { return p.Brand.Name }, p.Brand != nil),
			maybeName(func() string { return p.Supplier.Name }, p.Supplier != nil),
			maybeName(func() string { return p.Status.Name }, p.Status != nil),
			p.Price.StringFixed(2), salePrice, p.Stock,
			boolMark(p.Active), boolMark(p.Available),
			boolMark(p.Featured), boolMark(p.OnSale),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	logger.Info("Product export generated", map[string]interface{}{
		"product_count": len(products),
	})
	return buf.Bytes(), nil
}

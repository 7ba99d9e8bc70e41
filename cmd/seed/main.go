package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/Manulynx/kitaluro/config"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/db"
)

// Expected columns in the import sheet.
const (
	colName = iota
	colCategory
	colSubcategory
	colBrand
	colSupplier
	colStatus
	colPrice
	colSalePrice
	colStock
	colSKU
	colShortDescription
	colImageURL
	columnCount
)

// taxonomyCache resolves taxonomy names to IDs, creating entries on
// first sight so imports never fail on a missing category or brand.
type taxonomyCache struct {
	taxonomySvc   service.TaxonomyService
	categories    map[string]uint
	subcategories map[string]uint // keyed "categoryID|name"
	brands        map[string]uint
	suppliers     map[string]uint
	statuses      map[string]uint
}

func newTaxonomyCache(taxonomySvc service.TaxonomyService) (*taxonomyCache, error) {
	cache := &taxonomyCache{
		taxonomySvc:   taxonomySvc,
		categories:    make(map[string]uint),
		subcategories: make(map[string]uint),
		brands:        make(map[string]uint),
		suppliers:     make(map[string]uint),
		statuses:      make(map[string]uint),
	}

	categories, err := taxonomySvc.ListCategories(false)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		cache.categories[strings.ToLower(c.Name)] = c.ID
		subcategories, err := taxonomySvc.ListSubcategories(c.ID, false)
		if err != nil {
			return nil, err
		}
		for _, s := range subcategories {
			cache.subcategories[subcategoryKey(c.ID, s.Name)] = s.ID
		}
	}

	brands, err := taxonomySvc.ListBrands(false)
	if err != nil {
		return nil, err
	}
	for _, b := range brands {
		cache.brands[strings.ToLower(b.Name)] = b.ID
	}

	suppliers, err := taxonomySvc.ListSuppliers(false)
	if err != nil {
		return nil, err
	}
	for _, s := range suppliers {
		cache.suppliers[strings.ToLower(s.Name)] = s.ID
	}

	statuses, err := taxonomySvc.ListStatuses(false)
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		cache.statuses[strings.ToLower(s.Name)] = s.ID
	}

	return cache, nil
}

func subcategoryKey(categoryID uint, name string) string {
	return fmt.Sprintf("%d|%s", categoryID, strings.ToLower(name))
}

func (c *taxonomyCache) category(name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := c.categories[strings.ToLower(name)]; ok {
		return &id, nil
	}
	created, err := c.taxonomySvc.CreateCategory(service.CategoryInput{Name: name, Active: true})
	if err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	c.categories[strings.ToLower(name)] = created.ID
	return &created.ID, nil
}

func (c *taxonomyCache) subcategory(categoryID *uint, name string) (*uint, error) {
	if name == "" || categoryID == nil {
		return nil, nil
	}
	if id, ok := c.subcategories[subcategoryKey(*categoryID, name)]; ok {
		return &id, nil
	}
	created, err := c.taxonomySvc.CreateSubcategory(service.SubcategoryInput{
		CategoryID: *categoryID,
		Name:       name,
		Active:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create subcategory %q: %w", name, err)
	}
	c.subcategories[subcategoryKey(*categoryID, name)] = created.ID
	return &created.ID, nil
}

func (c *taxonomyCache) brand(name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := c.brands[strings.ToLower(name)]; ok {
		return &id, nil
	}
	created, err := c.taxonomySvc.CreateBrand(service.BrandInput{Name: name, Active: true})
	if err != nil {
		return nil, fmt.Errorf("create brand %q: %w", name, err)
	}
	c.brands[strings.ToLower(name)] = created.ID
	return &created.ID, nil
}

func (c *taxonomyCache) supplier(name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := c.suppliers[strings.ToLower(name)]; ok {
		return &id, nil
	}
	created, err := c.taxonomySvc.CreateSupplier(service.SupplierInput{Name: name, Active: true})
	if err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", name, err)
	}
	c.suppliers[strings.ToLower(name)] = created.ID
	return &created.ID, nil
}

func (c *taxonomyCache) status(name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := c.statuses[strings.ToLower(name)]; ok {
		return &id, nil
	}
	created, err := c.taxonomySvc.CreateStatus(service.StatusInput{Name: name, Active: true})
	if err != nil {
		return nil, fmt.Errorf("create status %q: %w", name, err)
	}
	c.statuses[strings.ToLower(name)] = created.ID
	return &created.ID, nil
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	mediaRepo := repository.NewMediaRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	subcategoryRepo := repository.NewSubcategoryRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	supplierRepo := repository.NewSupplierRepository(db.GetDB())
	statusRepo := repository.NewStatusRepository(db.GetDB())

	productService := service.NewProductService(
		productRepo,
		mediaRepo,
		categoryRepo,
		subcategoryRepo,
		brandRepo,
		supplierRepo,
		statusRepo,
	)
	taxonomyService := service.NewTaxonomyService(
		categoryRepo,
		subcategoryRepo,
		brandRepo,
		supplierRepo,
		statusRepo,
	)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	inputs, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped %d rows)\n", len(inputs), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	cache, err := newTaxonomyCache(taxonomyService)
	if err != nil {
		log.Fatal("Failed to load taxonomy:", err)
	}

	imported := 0
	failed := 0
	for i := range inputs {
		row := &inputs[i]

		input := row.input
		if input.CategoryID, err = cache.category(row.category); err != nil {
			log.Fatal("Failed to resolve taxonomy:", err)
		}
		if input.SubcategoryID, err = cache.subcategory(input.CategoryID, row.subcategory); err != nil {
			log.Fatal("Failed to resolve taxonomy:", err)
		}
		if input.BrandID, err = cache.brand(row.brand); err != nil {
			log.Fatal("Failed to resolve taxonomy:", err)
		}
		if input.SupplierID, err = cache.supplier(row.supplier); err != nil {
			log.Fatal("Failed to resolve taxonomy:", err)
		}
		if input.StatusID, err = cache.status(row.status); err != nil {
			log.Fatal("Failed to resolve taxonomy:", err)
		}

		if _, err := productService.CreateProduct(input, service.GalleryDelta{}); err != nil {
			fmt.Printf("  row %d (%s): %v\n", row.line, input.Name, err)
			failed++
			continue
		}
		imported++

		if imported%100 == 0 {
			fmt.Printf("Imported %d products...\n", imported)
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Imported: %d\n", imported)
	fmt.Printf("  Failed:   %d\n", failed)
	fmt.Printf("  Skipped:  %d\n", skipped)
}

// productRow keeps the raw taxonomy names next to the input so they can
// be resolved to IDs after the confirmation prompt.
type productRow struct {
	line        int
	input       service.ProductInput
	category    string
	subcategory string
	brand       string
	supplier    string
	status      string
}

func readProductsFromXLSX(filePath string) ([]productRow, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var inputs []productRow
	seen := make(map[string]bool)
	skipped := 0

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		name := cell(row, colName)
		priceStr := cell(row, colPrice)
		if name == "" || priceStr == "" {
			skipped++
			continue
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.Sign() <= 0 {
			skipped++
			continue
		}

		var salePrice *decimal.Decimal
		if s := cell(row, colSalePrice); s != "" {
			parsed, err := decimal.NewFromString(s)
			if err == nil && parsed.Sign() > 0 && parsed.LessThan(price) {
				salePrice = &parsed
			}
		}

		stock := 0
		if s := cell(row, colStock); s != "" {
			if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
				stock = parsed
			}
		}

		sku := cell(row, colSKU)

		// Same name and same SKU means a repeated row.
		key := strings.ToLower(name) + "|" + sku
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		inputs = append(inputs, productRow{
			line: i + 1,
			input: service.ProductInput{
				Name:             name,
				ShortDescription: cell(row, colShortDescription),
				Price:            price,
				SalePrice:        salePrice,
				Stock:            stock,
				SKU:              sku,
				ImageURL:         cell(row, colImageURL),
				Available:        stock > 0,
				Active:           true,
			},
			category:    cell(row, colCategory),
			subcategory: cell(row, colSubcategory),
			brand:       cell(row, colBrand),
			supplier:    cell(row, colSupplier),
			status:      cell(row, colStatus),
		})
	}

	fmt.Printf("\nParsed %d products from %d rows\n", len(inputs), len(rows)-1)

	return inputs, skipped, nil
}

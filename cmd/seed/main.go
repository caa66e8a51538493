package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopworks/storefront-backend/config"
	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports a product catalog from an XLSX sheet. Expected columns:
// name | category | price | compare_price | stock | description | image_url
// The first row is treated as a header and skipped.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <vendor_username>")
	}

	filePath := os.Args[1]
	vendorUsername := os.Args[2]

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

	userRepo := repository.NewUserRepository(db.GetDB())
	vendor, err := userRepo.FindByUsername(vendorUsername)
	if err != nil {
		log.Fatalf("Vendor %q not found: %v", vendorUsername, err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	imported := 0
	for _, row := range rows {
		category, err := findOrCreateCategory(categoryRepo, row.category)
		if err != nil {
			log.Printf("Skipping %q: %v", row.name, err)
			continue
		}

		product := &model.Product{
			Name:         row.name,
			Description:  row.description,
			Price:        row.price,
			ComparePrice: row.comparePrice,
			CategoryID:   category.ID,
			VendorID:     vendor.ID,
			ImageURL:     row.imageURL,
			Stock:        row.stock,
			IsActive:     true,
		}
		if err := productRepo.Create(product); err != nil {
			log.Printf("Failed to import %q: %v", row.name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

type catalogRow struct {
	name         string
	category     string
	price        float64
	comparePrice *float64
	stock        int
	description  string
	imageURL     string
}

func readCatalogFromXLSX(filePath string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheetName)
	}

	var catalog []catalogRow
	for i, row := range rows[1:] {
		if len(row) < 3 {
			log.Printf("Skipping row %d: too few columns", i+2)
			continue
		}

		name := strings.TrimSpace(row[0])
		category := strings.TrimSpace(row[1])
		if name == "" || category == "" {
			log.Printf("Skipping row %d: missing name or category", i+2)
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || price <= 0 {
			log.Printf("Skipping row %d: invalid price %q", i+2, row[2])
			continue
		}

		entry := catalogRow{
			name:     name,
			category: category,
			price:    price,
		}

		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			if cp, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err == nil && cp > price {
				entry.comparePrice = &cp
			}
		}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			if stock, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil && stock >= 0 {
				entry.stock = stock
			}
		}
		if len(row) > 5 {
			entry.description = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			entry.imageURL = strings.TrimSpace(row[6])
		}

		catalog = append(catalog, entry)
	}

	return catalog, nil
}

func findOrCreateCategory(repo repository.CategoryRepository, name string) (*model.Category, error) {
	categories, err := repo.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], nil
		}
	}

	category := &model.Category{Name: name}
	if err := repo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category %q already exists with a conflicting slug", name)
		}
		return nil, err
	}
	return category, nil
}

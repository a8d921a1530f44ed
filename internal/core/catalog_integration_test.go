package core_test

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/core"
)

func TestCatalog_BrandUniqueness(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCatalogService(pool)
	ctx := context.Background()

	// Seed already holds Nike / 001. Same name, different code: rejected.
	_, err := svc.CreateBrand(ctx, "Nike", "002")
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for repeated brand name, got %v", err)
	}

	// Case-insensitive: NIKE is the same brand.
	_, err = svc.CreateBrand(ctx, "NIKE", "003")
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for case-variant brand name, got %v", err)
	}

	// Different name but reused code: rejected.
	_, err = svc.CreateBrand(ctx, "Adidas", "001")
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for reused brand code, got %v", err)
	}

	// No partial inserts happened.
	brands, err := svc.ListBrands(ctx)
	if err != nil {
		t.Fatalf("ListBrands failed: %v", err)
	}
	if len(brands) != 1 {
		t.Errorf("Expected 1 brand after rejected duplicates, got %d", len(brands))
	}

	// A genuinely new brand goes through.
	brand, err := svc.CreateBrand(ctx, "Adidas", "002")
	if err != nil {
		t.Fatalf("CreateBrand failed: %v", err)
	}
	if brand.Name != "Adidas" || brand.Code != "002" {
		t.Errorf("Unexpected brand returned: %+v", brand)
	}
}

func TestCatalog_BrandCodeMustBeDigits(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCatalogService(pool)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, "Puma", "PU1")
	if !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid for non-numeric brand code, got %v", err)
	}
}

func TestCatalog_AvailabilityProbes(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCatalogService(pool)
	ctx := context.Background()

	taken, err := svc.BrandNameTaken(ctx, "nike", 0)
	if err != nil {
		t.Fatalf("BrandNameTaken failed: %v", err)
	}
	if !taken {
		t.Error("Expected 'nike' to be taken case-insensitively")
	}

	// Excluding the brand's own id frees the name for its edit form.
	taken, err = svc.BrandNameTaken(ctx, "Nike", 1)
	if err != nil {
		t.Fatalf("BrandNameTaken failed: %v", err)
	}
	if taken {
		t.Error("Expected 'Nike' to be free when excluding brand 1")
	}

	taken, err = svc.BrandCodeTaken(ctx, "001", 0)
	if err != nil {
		t.Fatalf("BrandCodeTaken failed: %v", err)
	}
	if !taken {
		t.Error("Expected code '001' to be taken")
	}

	taken, err = svc.OptionNameTaken(ctx, "us 8", 0)
	if err != nil {
		t.Fatalf("OptionNameTaken failed: %v", err)
	}
	if !taken {
		t.Error("Expected 'us 8' to be taken case-insensitively")
	}
}

func TestCatalog_ProductRequiresOption(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCatalogService(pool)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, core.ProductInput{
		Name:    "Air Force 1",
		BrandID: 1,
	})
	if !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid for product without options, got %v", err)
	}

	product, err := svc.CreateProduct(ctx, core.ProductInput{
		Name:        "Air Force 1",
		BrandID:     1,
		Description: "Court classic",
		Options: []core.ProductOptionInput{
			{OptionID: 1, SKU: "001-AF1-8"},
		},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if len(product.Options) != 1 || product.Options[0].SKU != "001-AF1-8" {
		t.Errorf("Unexpected product options: %+v", product.Options)
	}
	if product.BrandName != "Nike" {
		t.Errorf("Expected joined brand name Nike, got %q", product.BrandName)
	}
}

func TestCatalog_UpdateProductReplacesOptions(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCatalogService(pool)
	ctx := context.Background()

	updated, err := svc.UpdateProduct(ctx, 1, core.ProductInput{
		Name:        "Air Max 90 SE",
		BrandID:     1,
		Description: "Seasonal edition",
		Options: []core.ProductOptionInput{
			{OptionID: 2, SKU: "001-AM90SE-9"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Name != "Air Max 90 SE" {
		t.Errorf("Expected renamed product, got %q", updated.Name)
	}
	if len(updated.Options) != 1 || updated.Options[0].OptionID != 2 {
		t.Errorf("Expected options replaced by single option 2, got %+v", updated.Options)
	}

	_, err = svc.UpdateProduct(ctx, 999, core.ProductInput{
		Name:    "Ghost",
		BrandID: 1,
		Options: []core.ProductOptionInput{{OptionID: 1}},
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing product, got %v", err)
	}
}

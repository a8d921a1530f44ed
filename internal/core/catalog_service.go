package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService manages the master data every other flow hangs off:
// brands, options, and products with their per-option SKUs.
type CatalogService interface {
	ListBrands(ctx context.Context) ([]Brand, error)
	CreateBrand(ctx context.Context, name, code string) (*Brand, error)
	UpdateBrand(ctx context.Context, id int, name, code string) (*Brand, error)
	// BrandNameTaken and BrandCodeTaken back the as-you-type availability
	// checks. excludeID lets an edit form skip the record being edited.
	BrandNameTaken(ctx context.Context, name string, excludeID int) (bool, error)
	BrandCodeTaken(ctx context.Context, code string, excludeID int) (bool, error)

	ListOptions(ctx context.Context) ([]Option, error)
	CreateOption(ctx context.Context, name, description string) (*Option, error)
	UpdateOption(ctx context.Context, id int, name, description string) (*Option, error)
	OptionNameTaken(ctx context.Context, name string, excludeID int) (bool, error)

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error)
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

// ── Brands ────────────────────────────────────────────────────────────────────

func (s *catalogService) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT brandid, brandname, brandcode, created_at
		FROM brands
		ORDER BY brandname
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func validateBrand(name, code string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: brand name is required", ErrInvalid)
	}
	if !digitsOnly(code) {
		return fmt.Errorf("%w: brand code must contain only digits, got %q", ErrInvalid, code)
	}
	return nil
}

func (s *catalogService) CreateBrand(ctx context.Context, name, code string) (*Brand, error) {
	if err := validateBrand(name, code); err != nil {
		return nil, err
	}

	var b Brand
	err := s.pool.QueryRow(ctx, `
		INSERT INTO brands (brandname, brandcode)
		VALUES ($1, $2)
		RETURNING brandid, brandname, brandcode, created_at
	`, strings.TrimSpace(name), code).Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("brand %q / code %q: %w", name, code, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert brand: %w", err)
	}
	return &b, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id int, name, code string) (*Brand, error) {
	if err := validateBrand(name, code); err != nil {
		return nil, err
	}

	var b Brand
	err := s.pool.QueryRow(ctx, `
		UPDATE brands
		SET brandname = $1, brandcode = $2
		WHERE brandid = $3
		RETURNING brandid, brandname, brandcode, created_at
	`, strings.TrimSpace(name), code, id).Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("brand %d: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("brand %q / code %q: %w", name, code, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return &b, nil
}

func (s *catalogService) BrandNameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM brands
			WHERE lower(brandname) = lower($1) AND brandid <> $2
		)
	`, strings.TrimSpace(name), excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check brand name: %w", err)
	}
	return taken, nil
}

func (s *catalogService) BrandCodeTaken(ctx context.Context, code string, excludeID int) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM brands
			WHERE brandcode = $1 AND brandid <> $2
		)
	`, code, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check brand code: %w", err)
	}
	return taken, nil
}

// ── Options ───────────────────────────────────────────────────────────────────

func (s *catalogService) ListOptions(ctx context.Context) ([]Option, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT optionid, optionname, description, created_at
		FROM options
		ORDER BY optionname
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (s *catalogService) CreateOption(ctx context.Context, name, description string) (*Option, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: option name is required", ErrInvalid)
	}

	var o Option
	err := s.pool.QueryRow(ctx, `
		INSERT INTO options (optionname, description)
		VALUES ($1, $2)
		RETURNING optionid, optionname, description, created_at
	`, strings.TrimSpace(name), description).Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("option %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert option: %w", err)
	}
	return &o, nil
}

func (s *catalogService) UpdateOption(ctx context.Context, id int, name, description string) (*Option, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: option name is required", ErrInvalid)
	}

	var o Option
	err := s.pool.QueryRow(ctx, `
		UPDATE options
		SET optionname = $1, description = $2
		WHERE optionid = $3
		RETURNING optionid, optionname, description, created_at
	`, strings.TrimSpace(name), description, id).Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("option %d: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("option %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update option: %w", err)
	}
	return &o, nil
}

func (s *catalogService) OptionNameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM options
			WHERE lower(optionname) = lower($1) AND optionid <> $2
		)
	`, strings.TrimSpace(name), excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check option name: %w", err)
	}
	return taken, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *catalogService) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.productid, p.productname, p.brandid, b.brandname, p.description, p.created_at
		FROM products p
		JOIN brands b ON b.brandid = p.brandid
		ORDER BY p.productname
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BrandID, &p.BrandName, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		opts, err := s.productOptions(ctx, s.pool, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Options = opts
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx, `
		SELECT p.productid, p.productname, p.brandid, b.brandname, p.description, p.created_at
		FROM products p
		JOIN brands b ON b.brandid = p.brandid
		WHERE p.productid = $1
	`, id).Scan(&p.ID, &p.Name, &p.BrandID, &p.BrandName, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	p.Options, err = s.productOptions(ctx, s.pool, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *catalogService) productOptions(ctx context.Context, q pgxQuerier, productID int) ([]ProductOption, error) {
	rows, err := q.Query(ctx, `
		SELECT po.optionid, o.optionname, po.sku
		FROM product_options po
		JOIN options o ON o.optionid = po.optionid
		WHERE po.productid = $1
		ORDER BY o.optionname
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product options: %w", err)
	}
	defer rows.Close()

	var opts []ProductOption
	for rows.Next() {
		var po ProductOption
		if err := rows.Scan(&po.OptionID, &po.OptionName, &po.SKU); err != nil {
			return nil, fmt.Errorf("failed to scan product option: %w", err)
		}
		opts = append(opts, po)
	}
	return opts, rows.Err()
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalid)
	}
	if in.BrandID <= 0 {
		return fmt.Errorf("%w: product requires a brand", ErrInvalid)
	}
	if len(in.Options) == 0 {
		return fmt.Errorf("%w: product requires at least one option", ErrInvalid)
	}
	seen := make(map[int]bool, len(in.Options))
	for _, opt := range in.Options {
		if opt.OptionID <= 0 {
			return fmt.Errorf("%w: option id must be positive", ErrInvalid)
		}
		if seen[opt.OptionID] {
			return fmt.Errorf("%w: option %d listed twice", ErrInvalid, opt.OptionID)
		}
		seen[opt.OptionID] = true
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID int
	err = tx.QueryRow(ctx, `
		INSERT INTO products (productname, brandid, description)
		VALUES ($1, $2, $3)
		RETURNING productid
	`, strings.TrimSpace(in.Name), in.BrandID, in.Description).Scan(&productID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	if err := insertProductOptions(ctx, tx, productID, in.Options); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product: %w", err)
	}
	return s.GetProduct(ctx, productID)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET productname = $1, brandid = $2, description = $3
		WHERE productid = $4
	`, strings.TrimSpace(in.Name), in.BrandID, in.Description, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM product_options WHERE productid = $1", id); err != nil {
		return nil, fmt.Errorf("failed to clear product options: %w", err)
	}
	if err := insertProductOptions(ctx, tx, id, in.Options); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return s.GetProduct(ctx, id)
}

func insertProductOptions(ctx context.Context, tx pgx.Tx, productID int, opts []ProductOptionInput) error {
	for _, opt := range opts {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_options (productid, optionid, sku)
			VALUES ($1, $2, $3)
		`, productID, opt.OptionID, opt.SKU)
		if err != nil {
			return fmt.Errorf("failed to insert product option %d: %w", opt.OptionID, err)
		}
	}
	return nil
}

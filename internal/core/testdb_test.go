package core_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB. RESTART IDENTITY makes the seed ids
	// deterministic: user 1, brand 1, options 1/2, product 1.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE outgoing, inventory, incoming_details, incoming,
			product_options, products, options, brands, users
			RESTART IDENTITY CASCADE;

		INSERT INTO users (username, displayname) VALUES ('tester', 'Test User');

		INSERT INTO brands (brandname, brandcode) VALUES ('Nike', '001');

		INSERT INTO options (optionname, description) VALUES
			('US 8', 'Size US 8'),
			('US 9', 'Size US 9');

		INSERT INTO products (productname, brandid, description)
		VALUES ('Air Max 90', 1, 'Classic running silhouette');

		INSERT INTO product_options (productid, optionid, sku) VALUES
			(1, 1, '001-AM90-8'),
			(1, 2, '001-AM90-9');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

// seed loads a small demo catalog and a default user. Run it after
// migrations on a fresh database; reruns upsert rather than duplicate.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"stockroom/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring default user...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, displayname)
		VALUES ('admin', 'Administrator')
		ON CONFLICT (username) DO UPDATE
		  SET displayname = EXCLUDED.displayname;
	`)
	if err != nil {
		log.Fatalf("Failed to restore user: %v", err)
	}

	log.Println("Restoring brands...")
	_, err = tx.Exec(ctx, `
		INSERT INTO brands (brandname, brandcode)
		VALUES
		  ('Nike',     '001'),
		  ('Adidas',   '002'),
		  ('Converse', '003')
		ON CONFLICT (brandcode) DO UPDATE
		  SET brandname = EXCLUDED.brandname;
	`)
	if err != nil {
		log.Fatalf("Failed to restore brands: %v", err)
	}

	log.Println("Restoring options...")
	_, err = tx.Exec(ctx, `
		INSERT INTO options (optionname, description)
		VALUES
		  ('US 8',  'Size US 8'),
		  ('US 9',  'Size US 9'),
		  ('US 10', 'Size US 10')
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to restore options: %v", err)
	}

	log.Println("Restoring products...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (productname, brandid, description)
		SELECT v.name, b.brandid, v.description
		FROM (VALUES
		    ('Air Max 90',  '001', 'Classic running silhouette'),
		    ('Samba OG',    '002', 'Low-profile trainer'),
		    ('Chuck 70 Hi', '003', 'High-top canvas')
		) AS v(name, code, description)
		JOIN brands b ON b.brandcode = v.code
		WHERE NOT EXISTS (
			SELECT 1 FROM products p WHERE p.productname = v.name
		);
	`)
	if err != nil {
		log.Fatalf("Failed to restore products: %v", err)
	}

	log.Println("Restoring product options...")
	_, err = tx.Exec(ctx, `
		INSERT INTO product_options (productid, optionid, sku)
		SELECT p.productid, o.optionid,
		       b.brandcode || '-' || p.productid || '-' || o.optionid
		FROM products p
		JOIN brands b  ON b.brandid = p.brandid
		CROSS JOIN options o
		ON CONFLICT (productid, optionid) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to restore product options: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data restored successfully.")
	os.Exit(0)
}

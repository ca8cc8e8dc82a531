package postgres

import (
	"context"
	"fmt"
)

// schemaStatements tablas del catálogo y del ledger.
//
// stock_movements no tiene FK a products: borrar un producto del catálogo
// conserva su historial. El stock no tiene columna: se recalcula del ledger.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		sku           TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT '',
		price         NUMERIC(14,2) NOT NULL,
		cost_price    NUMERIC(14,2) NOT NULL,
		reorder_point BIGINT NOT NULL DEFAULT 0,
		supplier      TEXT NOT NULL DEFAULT '',
		image_url     TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_sku_key ON products (upper(sku))`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		seq        BIGINT PRIMARY KEY,
		product_id TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK (kind IN ('received', 'shipped', 'adjusted')),
		quantity   BIGINT NOT NULL CHECK (quantity <> 0),
		reference  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS stock_movements_product_idx ON stock_movements (product_id, created_at)`,
}

// EnsureSchema crea las tablas si no existen. Idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

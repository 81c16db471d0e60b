package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Column types that differ per dialect are written as {{ID}}, {{TS}} and
// {{FLOAT}} and expanded by ddlFor.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id {{ID}},
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at {{TS}} NOT NULL,
		CONSTRAINT uq_users_email UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id {{ID}},
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		created_at {{TS}} NOT NULL,
		CONSTRAINT uq_categories_name UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id {{ID}},
		supplier_id BIGINT NOT NULL,
		category_id BIGINT NOT NULL,
		code VARCHAR(100) NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		image_url VARCHAR(1024) NULL,
		price DECIMAL(12,2) NOT NULL,
		weight {{FLOAT}} NOT NULL,
		length {{FLOAT}} NOT NULL,
		width {{FLOAT}} NOT NULL,
		height {{FLOAT}} NOT NULL,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL,
		CONSTRAINT uq_products_supplier_code UNIQUE (supplier_id, code),
		CONSTRAINT fk_products_supplier FOREIGN KEY (supplier_id) REFERENCES users (id),
		CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories (id)
	)`,
	`CREATE TABLE IF NOT EXISTS collaborations (
		id {{ID}},
		supplier_id BIGINT NOT NULL,
		importer_id BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at {{TS}} NOT NULL,
		decided_at {{TS}} NULL,
		CONSTRAINT uq_collaborations_pair UNIQUE (supplier_id, importer_id),
		CONSTRAINT fk_collaborations_supplier FOREIGN KEY (supplier_id) REFERENCES users (id),
		CONSTRAINT fk_collaborations_importer FOREIGN KEY (importer_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS containers (
		id {{ID}},
		importer_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		max_weight {{FLOAT}} NOT NULL,
		max_volume {{FLOAT}} NOT NULL,
		max_price DECIMAL(12,2) NOT NULL,
		created_at {{TS}} NOT NULL,
		CONSTRAINT fk_containers_importer FOREIGN KEY (importer_id) REFERENCES users (id)
	)`,
	// product_id has no foreign key: items outlive deleted products and
	// count as zero in totals.
	`CREATE TABLE IF NOT EXISTS container_items (
		id {{ID}},
		container_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL,
		CONSTRAINT uq_container_items_product UNIQUE (container_id, product_id),
		CONSTRAINT fk_container_items_container FOREIGN KEY (container_id) REFERENCES containers (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id {{ID}},
		user_id BIGINT NOT NULL,
		message TEXT NOT NULL,
		link VARCHAR(255) NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{TS}} NOT NULL,
		CONSTRAINT fk_notifications_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	)`,
}

func ddlFor(d Dialect) *strings.Replacer {
	switch d.Name {
	case Postgres.Name:
		return strings.NewReplacer("{{ID}}", "BIGSERIAL PRIMARY KEY", "{{TS}}", "TIMESTAMPTZ", "{{FLOAT}}", "DOUBLE PRECISION")
	case SQLite.Name:
		return strings.NewReplacer("{{ID}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{TS}}", "DATETIME", "{{FLOAT}}", "REAL")
	default:
		return strings.NewReplacer("{{ID}}", "BIGINT AUTO_INCREMENT PRIMARY KEY", "{{TS}}", "DATETIME(6)", "{{FLOAT}}", "DOUBLE")
	}
}

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB, d Dialect) error {
	log.Println("Running database migrations...")

	r := ddlFor(d)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}

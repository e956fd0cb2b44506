package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL for the relational half of the lab-desk store.
// Catalog types and order events live in Redis and have no table.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(190) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'STAFF',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS lab_tests (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		test_name VARCHAR(120) NOT NULL,
		sample_type VARCHAR(20) NOT NULL DEFAULT '',
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		is_available INT UNSIGNED NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lab_orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		test_id BIGINT UNSIGNED NOT NULL,
		patient_name VARCHAR(120) NOT NULL,
		status VARCHAR(20) NOT NULL,
		result_summary VARCHAR(300) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_order_test FOREIGN KEY (test_id) REFERENCES lab_tests(id) ON DELETE RESTRICT
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_title VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		show_id BIGINT UNSIGNED NOT NULL,
		customer_name VARCHAR(120) NOT NULL,
		seats INT UNSIGNED NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_reservation_show FOREIGN KEY (show_id) REFERENCES shows(id) ON DELETE RESTRICT
	)`,
}

// Migrate creates any missing tables.  Statements are idempotent so it is
// safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

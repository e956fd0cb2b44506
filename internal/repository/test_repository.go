// Package repository contains data access logic for the lab-desk store.
// This file manages the `lab_tests` table.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"

	"github.com/iliyamo/lab-desk/internal/database"
	"github.com/iliyamo/lab-desk/internal/model"
)

const testColumns = `id, test_name, sample_type, price, is_available`

// TestRepo manages persistence for lab tests.
type TestRepo struct {
	db *sql.DB
}

// NewTestRepo constructs a TestRepo with the given DB handle.
func NewTestRepo(db *sql.DB) *TestRepo {
	return &TestRepo{db: db}
}

func scanTest(rows *sql.Rows, t *model.Test) error {
	return rows.Scan(&t.ID, &t.TestName, &t.SampleType, &t.Price, &t.IsAvailable)
}

// List returns one page of tests ordered by id together with the total
// row count.
func (r *TestRepo) List(ctx context.Context, p ListParams) ([]model.Test, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lab_tests`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+testColumns+` FROM lab_tests ORDER BY id ASC LIMIT ? OFFSET ?`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	tests, err := collect(rows, scanTest)
	return tests, total, err
}

// GetByID retrieves a test. It returns ErrNotFound when no row matches.
func (r *TestRepo) GetByID(ctx context.Context, id uint64) (*model.Test, error) {
	var t model.Test
	err := r.db.QueryRowContext(ctx, `SELECT `+testColumns+` FROM lab_tests WHERE id = ?`, id).
		Scan(&t.ID, &t.TestName, &t.SampleType, &t.Price, &t.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts t and reloads it so DB defaults (price, sample_type) are
// reflected in the returned record.
func (r *TestRepo) Create(ctx context.Context, t *model.Test) (*model.Test, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lab_tests (test_name, sample_type, price, is_available) VALUES (?, ?, ?, ?)`,
		t.TestName, t.SampleType, defaultPrice(t.Price), t.IsAvailable)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites every writable column of the test with id t.ID.
// MySQL reports zero affected rows for an identical update, so existence
// is checked through the reload.
func (r *TestRepo) Update(ctx context.Context, t *model.Test) (*model.Test, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE lab_tests SET test_name = ?, sample_type = ?, price = ?, is_available = ? WHERE id = ?`,
		t.TestName, t.SampleType, defaultPrice(t.Price), t.IsAvailable, t.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t.ID)
}

// Delete removes a test. Orders reference tests with ON DELETE RESTRICT,
// so a referenced test yields ErrConflict.
func (r *TestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lab_tests WHERE id = ?`, id)
	if err != nil {
		if database.IsForeignKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func defaultPrice(p string) string {
	if p == "" {
		return "0.00"
	}
	return p
}

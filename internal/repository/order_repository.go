package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/lab-desk/internal/database"
	"github.com/iliyamo/lab-desk/internal/model"
)

const orderColumns = `id, test_id, patient_name, status, result_summary, created_at`

// OrderRepo manages persistence for lab orders.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func scanOrder(rows *sql.Rows, o *model.Order) error {
	return rows.Scan(&o.ID, &o.TestID, &o.PatientName, &o.Status, &o.ResultSummary, &o.CreatedAt)
}

// OrderFilter narrows List. A zero TestID means no filter.
type OrderFilter struct {
	TestID uint64
}

// List returns one page of orders, newest first, and the total count
// matching the filter.
func (r *OrderRepo) List(ctx context.Context, f OrderFilter, p ListParams) ([]model.Order, int, error) {
	where, args := "", []any{}
	if f.TestID != 0 {
		where = ` WHERE test_id = ?`
		args = append(args, f.TestID)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lab_orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM lab_orders`+where+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collect(rows, scanOrder)
	return orders, total, err
}

// GetByID retrieves an order or ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM lab_orders WHERE id = ?`, id).
		Scan(&o.ID, &o.TestID, &o.PatientName, &o.Status, &o.ResultSummary, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an order. An unknown test_id yields ErrInvalidReference.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lab_orders (test_id, patient_name, status, result_summary) VALUES (?, ?, ?, ?)`,
		o.TestID, o.PatientName, o.Status, o.ResultSummary)
	if err != nil {
		if database.IsForeignKey(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites the writable columns of order o.ID. created_at is
// server-owned and never written.
func (r *OrderRepo) Update(ctx context.Context, o *model.Order) (*model.Order, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE lab_orders SET test_id = ?, patient_name = ?, status = ?, result_summary = ? WHERE id = ?`,
		o.TestID, o.PatientName, o.Status, o.ResultSummary, o.ID); err != nil {
		if database.IsForeignKey(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return r.GetByID(ctx, o.ID)
}

// Delete removes an order or returns ErrNotFound.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lab_orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

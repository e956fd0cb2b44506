package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/lab-desk/internal/database"
	"github.com/iliyamo/lab-desk/internal/model"
)

// Reservations are always read joined with their show so the read-only
// show_title is populated. A LEFT JOIN keeps rows readable even if the
// show row is missing.
const reservationSelect = `SELECT r.id, r.show_id, COALESCE(s.movie_title, ''), r.customer_name, r.seats, r.status, r.created_at
	FROM reservations r LEFT JOIN shows s ON s.id = r.show_id`

// ReservationRepo manages persistence for reservations.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func scanReservation(rows *sql.Rows, v *model.Reservation) error {
	return rows.Scan(&v.ID, &v.ShowID, &v.ShowTitle, &v.CustomerName, &v.Seats, &v.Status, &v.CreatedAt)
}

// List returns one page of reservations, newest first, and the total count.
func (r *ReservationRepo) List(ctx context.Context, p ListParams) ([]model.Reservation, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, reservationSelect+` ORDER BY r.id DESC LIMIT ? OFFSET ?`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanReservation)
	return list, total, err
}

// GetByID retrieves a reservation or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var v model.Reservation
	err := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.id = ?`, id).
		Scan(&v.ID, &v.ShowID, &v.ShowTitle, &v.CustomerName, &v.Seats, &v.Status, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a reservation. An unknown show yields ErrInvalidReference.
func (r *ReservationRepo) Create(ctx context.Context, v *model.Reservation) (*model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (show_id, customer_name, seats, status) VALUES (?, ?, ?, ?)`,
		v.ShowID, v.CustomerName, v.Seats, v.Status)
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

// Update overwrites the writable columns of reservation v.ID.
func (r *ReservationRepo) Update(ctx context.Context, v *model.Reservation) (*model.Reservation, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET show_id = ?, customer_name = ?, seats = ?, status = ? WHERE id = ?`,
		v.ShowID, v.CustomerName, v.Seats, v.Status, v.ID); err != nil {
		if database.IsForeignKey(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return r.GetByID(ctx, v.ID)
}

// Delete removes a reservation or returns ErrNotFound.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel checks

	"github.com/iliyamo/lab-desk/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// List returns one page of shows ordered by id and the total count.
func (r *ShowRepo) List(ctx context.Context, p ListParams) ([]model.Show, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, movie_title FROM shows ORDER BY id ASC LIMIT ? OFFSET ?`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	shows, err := collect(rows, func(rows *sql.Rows, s *model.Show) error {
		return rows.Scan(&s.ID, &s.MovieTitle)
	})
	return shows, total, err
}

// GetByID retrieves a show by its ID. It returns ErrNotFound if there is
// no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	var s model.Show
	err := r.db.QueryRowContext(ctx, `SELECT id, movie_title FROM shows WHERE id = ?`, id).Scan(&s.ID, &s.MovieTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new show and assigns the generated ID.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) (*model.Show, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO shows (movie_title) VALUES (?)`, s.MovieTitle)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *s
	out.ID = uint64(id)
	return &out, nil
}

// Update renames a show. An identical title is not an error.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) (*model.Show, error) {
	if _, err := r.db.ExecContext(ctx, `UPDATE shows SET movie_title = ? WHERE id = ?`, s.MovieTitle, s.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, s.ID)
}

// Delete removes a show inside a transaction. If the show does not exist
// ErrNotFound is returned; if any reservations reference it the deletion
// is aborted with ErrConflict.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Ensure rollback or commit at the end
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? FOR UPDATE`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	var resCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE show_id = ?`, id).Scan(&resCount); err != nil {
		return err
	}
	if resCount > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	return err
}

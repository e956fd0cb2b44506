package repository

import "database/sql"

// ListParams selects one page of a collection.
type ListParams struct {
	Limit  int
	Offset int
}

// collect drains rows through scan. It always returns a non-nil slice so
// empty collections serialize as [].
func collect[T any](rows *sql.Rows, scan func(*sql.Rows, *T) error) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

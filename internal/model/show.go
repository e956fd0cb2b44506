package model

// Show is a row of the `shows` table.  Reservations reference shows, and
// a show with reservations cannot be deleted.
type Show struct {
	ID         uint64 `json:"id"`          // shows.id
	MovieTitle string `json:"movie_title"` // shows.movie_title
}

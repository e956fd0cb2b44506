package model

import "time"

// ReservationStatus is the state of a seat reservation.
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "RESERVED"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Valid reports whether s is RESERVED, CONFIRMED or CANCELLED.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationReserved, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// Reservation records a customer's booking of a number of seats for a
// show.  ShowTitle is read-only: it is joined from `shows` on every read
// and ignored on writes.
//
// Fields:
//  ID           – primary key identifier.
//  ShowID       – show being reserved (serialized as "show").
//  ShowTitle    – movie title of the show, read-only.
//  CustomerName – name the booking was made under.
//  Seats        – number of seats, at least one.
//  Status       – RESERVED, CONFIRMED or CANCELLED.
//  CreatedAt    – creation timestamp.
type Reservation struct {
	ID           uint64            `json:"id"`                   // reservations.id
	ShowID       uint64            `json:"show"`                 // reservations.show_id
	ShowTitle    string            `json:"show_title,omitempty"` // shows.movie_title
	CustomerName string            `json:"customer_name"`        // reservations.customer_name
	Seats        uint32            `json:"seats"`                // reservations.seats
	Status       ReservationStatus `json:"status"`               // reservations.status
	CreatedAt    time.Time         `json:"created_at"`           // reservations.created_at
}

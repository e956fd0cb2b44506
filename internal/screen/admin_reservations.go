package screen

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/listsync"
	"github.com/iliyamo/lab-desk/internal/xref"
)

type reservationFields struct {
	Show         string
	CustomerName string
	Seats        int
	Status       string
}

// AdminReservations is full CRUD over reservations.  Shows and
// reservations load together, all or nothing.
type AdminReservations struct {
	*crud[labapi.Reservation, reservationFields, labapi.ReservationPayload]

	client *labapi.Client
	shows  *listsync.List[labapi.Show]

	mu     sync.RWMutex
	byShow xref.Index[labapi.Show]
}

func NewAdminReservations(client *labapi.Client) *AdminReservations {
	s := &AdminReservations{client: client, shows: listsync.New(keyOf[labapi.Show])}
	s.byShow = xref.Build[labapi.Show](nil, keyOf[labapi.Show])
	c := newCrud(client.Reservations(), form.Spec[reservationFields, labapi.Reservation, labapi.ReservationPayload]{
		Blank: func() reservationFields {
			return reservationFields{Seats: 1, Status: labapi.ReservationReserved}
		},
		Seed: func(f reservationFields) reservationFields {
			if f.Show == "" {
				if shows := s.shows.Items(); len(shows) > 0 {
					f.Show = shows[0].ID.String()
				}
			}
			return f
		},
		FromItem: func(r labapi.Reservation) reservationFields {
			return reservationFields{Show: r.Show.String(), CustomerName: r.CustomerName, Seats: r.Seats, Status: r.Status}
		},
		Check: func(f reservationFields) *form.Violation {
			return form.First(
				form.Required("show", f.Show, msgReservShow),
				form.Required("customer_name", f.CustomerName, msgReservCustomer),
				form.Positive("seats", f.Seats, msgReservSeats),
			)
		},
		Payload: func(f reservationFields) labapi.ReservationPayload {
			return labapi.ReservationPayload{
				Show:         labapi.ID(f.Show),
				CustomerName: strings.TrimSpace(f.CustomerName),
				Seats:        f.Seats,
				Status:       f.Status,
			}
		},
	})
	c.reload = s.loadAll
	c.msgLoad, c.msgSave, c.msgDelete = msgReservLoad, msgReservSave, msgReservDelete
	s.crud = c
	return s
}

func (s *AdminReservations) View() View { return ViewAdminReservations }

func (s *AdminReservations) Edit(id string) error { return s.edit(id) }

func (s *AdminReservations) loadAll(ctx context.Context) error {
	showsTicket := s.shows.Begin()
	resTicket := s.items.Begin()

	var (
		shows        []labapi.Show
		reservations []labapi.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		shows, err = s.client.Shows().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		reservations, err = s.client.Reservations().List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if s.shows.Commit(showsTicket, shows) {
		index := xref.Build(shows, keyOf[labapi.Show])
		s.mu.Lock()
		s.byShow = index
		s.mu.Unlock()
	}
	s.items.Commit(resTicket, reservations)
	s.form.Reseed()
	return nil
}

// Shows returns the loaded shows, the choices for show.
func (s *AdminReservations) Shows() []labapi.Show { return s.shows.Items() }

// showLabel prefers the title the server denormalised onto the
// reservation, then the loaded show, then the raw id.
func (s *AdminReservations) showLabel(r labapi.Reservation) string {
	if r.ShowTitle != "" {
		return r.ShowTitle
	}
	s.mu.RLock()
	index := s.byShow
	s.mu.RUnlock()
	return index.Label(r.Show.String(),
		func(sh labapi.Show) string { return sh.MovieTitle },
		func(id string) string { return id },
	)
}

func (s *AdminReservations) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, r := range items {
		rows = append(rows, []string{r.ID.String(), s.showLabel(r), r.CustomerName, strconv.Itoa(r.Seats), r.Status})
	}
	return []string{"ID", "Show", "Customer", "Seats", "Status"}, rows
}

func (s *AdminReservations) Form() []Field {
	f := s.form.Fields()
	shows := s.shows.Items()
	ids := make([]string, 0, len(shows))
	for _, sh := range shows {
		ids = append(ids, sh.ID.String())
	}
	return []Field{
		{Name: "show", Value: f.Show, Options: ids},
		{Name: "customer_name", Value: f.CustomerName},
		{Name: "seats", Value: strconv.Itoa(f.Seats)},
		{Name: "status", Value: f.Status, Options: labapi.ReservationStatuses},
	}
}

func (s *AdminReservations) Set(name, value string) error {
	switch name {
	case "show":
		id := strings.TrimSpace(value)
		s.form.Edit(func(f *reservationFields) { f.Show = id })
	case "customer_name":
		s.form.Edit(func(f *reservationFields) { f.CustomerName = value })
	case "seats":
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		s.form.Edit(func(f *reservationFields) { f.Seats = n })
	case "status":
		v, err := oneOf(name, value, labapi.ReservationStatuses)
		if err != nil {
			return err
		}
		s.form.Edit(func(f *reservationFields) { f.Status = v })
	default:
		return unknownField(name)
	}
	return nil
}

package screen

import (
	"context"
	"strconv"

	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/listsync"
)

// readOnly lists a collection without any form.
type readOnly[T keyed, P any] struct {
	surface  Surface
	resource labapi.Resource[T, P]
	items    *listsync.List[T]
}

func newReadOnly[T keyed, P any](resource labapi.Resource[T, P]) *readOnly[T, P] {
	return &readOnly[T, P]{resource: resource, items: listsync.New(keyOf[T])}
}

func (s *readOnly[T, P]) Surface() *Surface { return &s.surface }

func (s *readOnly[T, P]) Items() []T { return s.items.Items() }

func (s *readOnly[T, P]) Load(ctx context.Context) error {
	if !s.surface.begin(Loading) {
		return ErrBusy
	}
	ticket := s.items.Begin()
	items, err := s.resource.List(ctx)
	if err == nil {
		s.items.Commit(ticket, items)
	}
	s.surface.settle(err, msgPublicLoad)
	return nil
}

// PublicOrders is the public order board.
type PublicOrders struct {
	*readOnly[labapi.Order, labapi.OrderPayload]
}

func NewPublicOrders(client *labapi.Client) *PublicOrders {
	return &PublicOrders{readOnly: newReadOnly(client.Orders())}
}

func (s *PublicOrders) View() View { return ViewPublicOrders }

func (s *PublicOrders) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, o := range items {
		result := o.ResultSummary
		if result == "" {
			result = noResults
		}
		rows = append(rows, []string{o.ID.String(), o.PatientName, o.Status, result})
	}
	return []string{"ID", "Patient", "Status", "Result"}, rows
}

// PublicReservations is the public reservation board.
type PublicReservations struct {
	*readOnly[labapi.Reservation, labapi.ReservationPayload]
}

func NewPublicReservations(client *labapi.Client) *PublicReservations {
	return &PublicReservations{readOnly: newReadOnly(client.Reservations())}
}

func (s *PublicReservations) View() View { return ViewPublicReservations }

func (s *PublicReservations) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, r := range items {
		show := r.ShowTitle
		if show == "" {
			show = r.Show.String()
		}
		rows = append(rows, []string{r.ID.String(), show, r.CustomerName, strconv.Itoa(r.Seats), r.Status})
	}
	return []string{"ID", "Show", "Customer", "Seats", "Status"}, rows
}

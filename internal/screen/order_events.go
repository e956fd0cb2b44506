package screen

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/listsync"
	"github.com/iliyamo/lab-desk/internal/xref"
)

type eventFields struct {
	Order     string
	EventType string
	Note      string
}

// OrderEvents records activity against lab orders.  Events, orders and
// catalog types load together; if any of the three fails nothing is
// replaced, so event rows are never labelled against a stale order set.
type OrderEvents struct {
	*crud[labapi.OrderEvent, eventFields, labapi.OrderEventCreate]

	client       *labapi.Client
	orders       *listsync.List[labapi.Order]
	catalogTypes *listsync.List[labapi.CatalogType]

	mu      sync.RWMutex
	byOrder xref.Index[labapi.Order]
}

func NewOrderEvents(client *labapi.Client) *OrderEvents {
	s := &OrderEvents{
		client:       client,
		orders:       listsync.New(keyOf[labapi.Order]),
		catalogTypes: listsync.New(keyOf[labapi.CatalogType]),
	}
	s.byOrder = xref.Build[labapi.Order](nil, keyOf[labapi.Order])
	c := newCrud(client.OrderEvents(), form.Spec[eventFields, labapi.OrderEvent, labapi.OrderEventCreate]{
		Blank: func() eventFields { return eventFields{EventType: labapi.OrderCreated} },
		Seed: func(f eventFields) eventFields {
			if f.Order == "" {
				if orders := s.orders.Items(); len(orders) > 0 {
					f.Order = orders[0].ID.String()
				}
			}
			return f
		},
		FromItem: func(ev labapi.OrderEvent) eventFields {
			return eventFields{Order: ev.LabOrderID.String(), EventType: ev.EventType, Note: ev.Note}
		},
		Check: func(f eventFields) *form.Violation {
			return form.First(
				form.Required("lab_order_id", f.Order, msgEventsOrder),
				form.Required("event_type", f.EventType, msgEventsType),
			)
		},
		Payload: func(f eventFields) labapi.OrderEventCreate {
			return labapi.NewOrderEventCreate(labapi.ID(f.Order), f.EventType, strings.TrimSpace(f.Note))
		},
	})
	c.patch = true
	c.reload = s.loadAll
	c.msgLoad, c.msgSave, c.msgDelete = msgEventsLoad, msgEventsCreate, msgEventsDelete
	s.crud = c
	return s
}

func (s *OrderEvents) View() View { return ViewOrderEvents }

// loadAll fetches the three collections concurrently and commits them
// only if every fetch succeeded.
func (s *OrderEvents) loadAll(ctx context.Context) error {
	eventsTicket := s.items.Begin()
	ordersTicket := s.orders.Begin()
	typesTicket := s.catalogTypes.Begin()

	var (
		events []labapi.OrderEvent
		orders []labapi.Order
		types  []labapi.CatalogType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = s.client.OrderEvents().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.client.Orders().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		types, err = s.client.CatalogTypes().List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if s.orders.Commit(ordersTicket, orders) {
		index := xref.Build(orders, keyOf[labapi.Order])
		s.mu.Lock()
		s.byOrder = index
		s.mu.Unlock()
	}
	s.catalogTypes.Commit(typesTicket, types)
	s.items.Commit(eventsTicket, events)
	s.form.Reseed()
	return nil
}

// Orders returns the loaded orders, the choices for lab_order_id.
func (s *OrderEvents) Orders() []labapi.Order { return s.orders.Items() }

// CatalogTypes returns the catalog loaded alongside the events.
func (s *OrderEvents) CatalogTypes() []labapi.CatalogType { return s.catalogTypes.Items() }

// Subject labels the order an event belongs to.  A dangling reference
// shows the raw order id.
func (s *OrderEvents) Subject(ev labapi.OrderEvent) string {
	s.mu.RLock()
	index := s.byOrder
	s.mu.RUnlock()
	return index.Label(ev.LabOrderID.String(),
		func(o labapi.Order) string { return "Patient: " + o.PatientName },
		func(id string) string { return "Order ID: " + id },
	)
}

func (s *OrderEvents) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, ev := range items {
		note := ev.Note
		if note == "" {
			note = "-"
		}
		rows = append(rows, []string{ev.ID.String(), s.Subject(ev), ev.EventType, ev.Source, note, ev.CreatedAt})
	}
	return []string{"ID", "Order", "Event", "Source", "Note", "Created"}, rows
}

func (s *OrderEvents) Form() []Field {
	f := s.form.Fields()
	orders := s.orders.Items()
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
	}
	return []Field{
		{Name: "order", Value: f.Order, Options: ids},
		{Name: "event_type", Value: f.EventType, Options: labapi.EventTypes},
		{Name: "note", Value: f.Note},
	}
}

func (s *OrderEvents) Set(name, value string) error {
	switch name {
	case "order", "lab_order_id":
		id := strings.TrimSpace(value)
		if _, ok := s.orders.Find(id); !ok {
			return noSuchItem(id)
		}
		s.form.Edit(func(f *eventFields) { f.Order = id })
	case "event_type":
		v, err := oneOf(name, value, labapi.EventTypes)
		if err != nil {
			return err
		}
		s.form.Edit(func(f *eventFields) { f.EventType = v })
	case "note":
		s.form.Edit(func(f *eventFields) { f.Note = value })
	default:
		return unknownField(name)
	}
	return nil
}

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

type orderFields struct {
	TestID        string
	PatientName   string
	Status        string
	ResultSummary string
}

// AdminOrders is full CRUD over lab orders.  The tests list only feeds
// the test selector, so failing to load it does not fail the screen.
type AdminOrders struct {
	*crud[labapi.Order, orderFields, labapi.OrderPayload]

	client *labapi.Client
	tests  *listsync.List[labapi.Test]

	mu     sync.RWMutex
	byTest xref.Index[labapi.Test]
}

func NewAdminOrders(client *labapi.Client) *AdminOrders {
	s := &AdminOrders{client: client, tests: listsync.New(keyOf[labapi.Test])}
	s.byTest = xref.Build[labapi.Test](nil, keyOf[labapi.Test])
	c := newCrud(client.Orders(), form.Spec[orderFields, labapi.Order, labapi.OrderPayload]{
		Blank: func() orderFields { return orderFields{Status: labapi.OrderCreated} },
		Seed: func(f orderFields) orderFields {
			if f.TestID == "" {
				if tests := s.tests.Items(); len(tests) > 0 {
					f.TestID = tests[0].ID.String()
				}
			}
			return f
		},
		FromItem: func(o labapi.Order) orderFields {
			return orderFields{TestID: o.TestID.String(), PatientName: o.PatientName, Status: o.Status, ResultSummary: o.ResultSummary}
		},
		Check: func(f orderFields) *form.Violation {
			return form.First(
				form.Required("test_id", f.TestID, msgOrdersTest),
				form.Required("patient_name", f.PatientName, msgOrdersPatient),
			)
		},
		Payload: func(f orderFields) labapi.OrderPayload {
			return labapi.OrderPayload{
				TestID:        labapi.ID(f.TestID),
				PatientName:   strings.TrimSpace(f.PatientName),
				Status:        f.Status,
				ResultSummary: strings.TrimSpace(f.ResultSummary),
			}
		},
	})
	c.reload = s.loadAll
	c.msgLoad, c.msgSave, c.msgDelete = msgOrdersLoad, msgOrdersSave, msgOrdersDelete
	s.crud = c
	return s
}

func (s *AdminOrders) View() View { return ViewAdminOrders }

func (s *AdminOrders) Edit(id string) error { return s.edit(id) }

func (s *AdminOrders) loadAll(ctx context.Context) error {
	testsTicket := s.tests.Begin()
	var tests []labapi.Test
	var testsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tests, testsErr = s.client.Tests().List(gctx)
		return nil
	})
	g.Go(func() error {
		return s.refresh(gctx)
	})
	err := g.Wait()

	if testsErr == nil && s.tests.Commit(testsTicket, tests) {
		index := xref.Build(tests, keyOf[labapi.Test])
		s.mu.Lock()
		s.byTest = index
		s.mu.Unlock()
		s.form.Reseed()
	}
	return err
}

// Tests returns the loaded tests, the choices for test_id.
func (s *AdminOrders) Tests() []labapi.Test { return s.tests.Items() }

func (s *AdminOrders) testLabel(id labapi.ID) string {
	s.mu.RLock()
	index := s.byTest
	s.mu.RUnlock()
	return index.Label(id.String(),
		func(t labapi.Test) string { return t.TestName },
		func(id string) string { return "Test #" + id },
	)
}

func (s *AdminOrders) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, o := range items {
		result := o.ResultSummary
		if result == "" {
			result = noResults
		}
		rows = append(rows, []string{o.ID.String(), s.testLabel(o.TestID), o.PatientName, o.Status, result})
	}
	return []string{"ID", "Test", "Patient", "Status", "Result"}, rows
}

func (s *AdminOrders) Form() []Field {
	f := s.form.Fields()
	tests := s.tests.Items()
	ids := make([]string, 0, len(tests))
	for _, t := range tests {
		ids = append(ids, t.ID.String())
	}
	return []Field{
		{Name: "test_id", Value: f.TestID, Options: ids},
		{Name: "patient_name", Value: f.PatientName},
		{Name: "status", Value: f.Status, Options: labapi.OrderStatuses},
		{Name: "result_summary", Value: f.ResultSummary},
	}
}

func (s *AdminOrders) Set(name, value string) error {
	switch name {
	case "test_id", "test":
		id := strings.TrimSpace(value)
		s.form.Edit(func(f *orderFields) { f.TestID = id })
	case "patient_name":
		s.form.Edit(func(f *orderFields) { f.PatientName = value })
	case "status":
		v, err := oneOf(name, value, labapi.OrderStatuses)
		if err != nil {
			return err
		}
		s.form.Edit(func(f *orderFields) { f.Status = v })
	case "result_summary":
		s.form.Edit(func(f *orderFields) { f.ResultSummary = value })
	default:
		return unknownField(name)
	}
	return nil
}

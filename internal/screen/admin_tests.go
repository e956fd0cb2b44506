package screen

import (
	"strconv"
	"strings"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

type testFields struct {
	TestName    string
	SampleType  string
	Price       string
	IsAvailable int
}

// AdminTests is full CRUD over lab tests.  Every write is followed by a
// reload.
type AdminTests struct {
	*crud[labapi.Test, testFields, labapi.TestPayload]
}

func NewAdminTests(client *labapi.Client) *AdminTests {
	c := newCrud(client.Tests(), form.Spec[testFields, labapi.Test, labapi.TestPayload]{
		Blank: func() testFields { return testFields{IsAvailable: 1} },
		FromItem: func(t labapi.Test) testFields {
			return testFields{TestName: t.TestName, SampleType: t.SampleType, Price: t.Price.String(), IsAvailable: t.IsAvailable}
		},
		Check: func(f testFields) *form.Violation {
			return form.Required("test_name", f.TestName, msgTestsName)
		},
		Payload: func(f testFields) labapi.TestPayload {
			return labapi.TestPayload{
				TestName:    strings.TrimSpace(f.TestName),
				SampleType:  strings.TrimSpace(f.SampleType),
				Price:       strings.TrimSpace(f.Price),
				IsAvailable: f.IsAvailable,
			}
		},
	})
	c.msgLoad, c.msgSave, c.msgDelete = msgTestsLoad, msgTestsSave, msgTestsDelete
	return &AdminTests{crud: c}
}

func (s *AdminTests) View() View { return ViewAdminTests }

func (s *AdminTests) Edit(id string) error { return s.edit(id) }

func (s *AdminTests) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{t.ID.String(), t.TestName, t.SampleType, t.Price.String(), strconv.Itoa(t.IsAvailable)})
	}
	return []string{"ID", "Test", "Sample", "Price", "Available"}, rows
}

func (s *AdminTests) Form() []Field {
	f := s.form.Fields()
	return []Field{
		{Name: "test_name", Value: f.TestName},
		{Name: "sample_type", Value: f.SampleType},
		{Name: "price", Value: f.Price},
		{Name: "is_available", Value: strconv.Itoa(f.IsAvailable)},
	}
}

func (s *AdminTests) Set(name, value string) error {
	switch name {
	case "test_name":
		s.form.Edit(func(f *testFields) { f.TestName = value })
	case "sample_type":
		s.form.Edit(func(f *testFields) { f.SampleType = value })
	case "price":
		s.form.Edit(func(f *testFields) { f.Price = value })
	case "is_available":
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		s.form.Edit(func(f *testFields) { f.IsAvailable = n })
	default:
		return unknownField(name)
	}
	return nil
}

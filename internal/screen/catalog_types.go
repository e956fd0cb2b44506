package screen

import (
	"strings"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

type catalogFields struct {
	Name     string
	Category string
}

// CatalogTypes manages the mobile catalog.  Creates and deletes patch
// the list locally.
type CatalogTypes struct {
	*crud[labapi.CatalogType, catalogFields, labapi.CatalogTypePayload]
}

func NewCatalogTypes(client *labapi.Client) *CatalogTypes {
	c := newCrud(client.CatalogTypes(), form.Spec[catalogFields, labapi.CatalogType, labapi.CatalogTypePayload]{
		Blank: func() catalogFields { return catalogFields{} },
		FromItem: func(ct labapi.CatalogType) catalogFields {
			return catalogFields{Name: ct.TestName, Category: ct.Category}
		},
		Check: func(f catalogFields) *form.Violation {
			return form.Required("test_name", f.Name, msgCatalogName)
		},
		Payload: func(f catalogFields) labapi.CatalogTypePayload {
			return labapi.CatalogTypePayload{
				TestName: strings.TrimSpace(f.Name),
				Category: strings.TrimSpace(f.Category),
				IsActive: true,
			}
		},
	})
	c.patch = true
	c.msgLoad, c.msgSave, c.msgDelete = msgCatalogLoad, msgCatalogCreate, msgCatalogDelete
	return &CatalogTypes{crud: c}
}

func (s *CatalogTypes) View() View { return ViewCatalogTypes }

func (s *CatalogTypes) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, ct := range items {
		category := ct.Category
		if category == "" {
			category = "-"
		}
		rows = append(rows, []string{ct.ID.String(), ct.TestName, category})
	}
	return []string{"ID", "Name", "Category"}, rows
}

func (s *CatalogTypes) Form() []Field {
	f := s.form.Fields()
	return []Field{{Name: "name", Value: f.Name}, {Name: "category", Value: f.Category}}
}

func (s *CatalogTypes) Set(name, value string) error {
	switch name {
	case "name", "test_name":
		s.form.Edit(func(f *catalogFields) { f.Name = value })
	case "category":
		s.form.Edit(func(f *catalogFields) { f.Category = value })
	default:
		return unknownField(name)
	}
	return nil
}

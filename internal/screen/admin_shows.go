package screen

import (
	"strings"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

type showFields struct {
	MovieTitle string
}

// AdminShows is full CRUD over shows.
type AdminShows struct {
	*crud[labapi.Show, showFields, labapi.ShowPayload]
}

func NewAdminShows(client *labapi.Client) *AdminShows {
	c := newCrud(client.Shows(), form.Spec[showFields, labapi.Show, labapi.ShowPayload]{
		Blank:    func() showFields { return showFields{} },
		FromItem: func(sh labapi.Show) showFields { return showFields{MovieTitle: sh.MovieTitle} },
		Check: func(f showFields) *form.Violation {
			return form.Required("movie_title", f.MovieTitle, msgShowsTitle)
		},
		Payload: func(f showFields) labapi.ShowPayload {
			return labapi.ShowPayload{MovieTitle: strings.TrimSpace(f.MovieTitle)}
		},
	})
	c.msgLoad, c.msgSave, c.msgDelete = msgShowsLoad, msgShowsSave, msgShowsDelete
	return &AdminShows{crud: c}
}

func (s *AdminShows) View() View { return ViewAdminShows }

func (s *AdminShows) Edit(id string) error { return s.edit(id) }

func (s *AdminShows) Rows() ([]string, [][]string) {
	items := s.Items()
	rows := make([][]string, 0, len(items))
	for _, sh := range items {
		rows = append(rows, []string{sh.ID.String(), sh.MovieTitle})
	}
	return []string{"ID", "Movie"}, rows
}

func (s *AdminShows) Form() []Field {
	return []Field{{Name: "movie_title", Value: s.form.Fields().MovieTitle}}
}

func (s *AdminShows) Set(name, value string) error {
	if name != "movie_title" {
		return unknownField(name)
	}
	s.form.Edit(func(f *showFields) { f.MovieTitle = value })
	return nil
}

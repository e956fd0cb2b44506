package screen

import (
	"context"
	"strings"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

type credentials struct {
	Email    string
	Password string
}

// Login signs the shared session in and moves the navigator to Home.
type Login struct {
	surface Surface
	client  *labapi.Client
	nav     *Navigator
	form    *form.Controller[credentials, credentials, credentials]

	// Home is the view opened after a successful login.
	Home View
}

func NewLogin(client *labapi.Client, nav *Navigator, email string) *Login {
	same := func(c credentials) credentials { return c }
	return &Login{
		client: client,
		nav:    nav,
		Home:   ViewMenu,
		form: form.New(form.Spec[credentials, credentials, credentials]{
			Blank:    func() credentials { return credentials{Email: email} },
			FromItem: same,
			Check: func(c credentials) *form.Violation {
				return form.First(
					form.Required("email", c.Email, msgLoginRequired),
					form.Required("password", c.Password, msgLoginRequired),
				)
			},
			Payload: func(c credentials) credentials {
				return credentials{Email: strings.TrimSpace(c.Email), Password: c.Password}
			},
		}),
	}
}

func (s *Login) View() View        { return ViewLogin }
func (s *Login) Surface() *Surface { return &s.surface }

// Load has nothing to fetch.
func (s *Login) Load(context.Context) error {
	if !s.surface.begin(Loading) {
		return ErrBusy
	}
	s.surface.settle(nil, "")
	return nil
}

func (s *Login) Rows() ([]string, [][]string) {
	if !s.client.Session().LoggedIn() {
		return nil, nil
	}
	return []string{"Signed in as", "Role"}, [][]string{{s.client.Session().Email(), s.client.Session().Role()}}
}

func (s *Login) Form() []Field {
	c := s.form.Fields()
	masked := ""
	if c.Password != "" {
		masked = "********"
	}
	return []Field{{Name: "email", Value: c.Email}, {Name: "password", Value: masked}}
}

func (s *Login) Set(name, value string) error {
	switch name {
	case "email":
		s.form.Edit(func(c *credentials) { c.Email = value })
	case "password":
		s.form.Edit(func(c *credentials) { c.Password = value })
	default:
		return unknownField(name)
	}
	return nil
}

func (s *Login) Clear() { s.form.Reset() }

func (s *Login) Submit(ctx context.Context) error {
	if !s.surface.begin(Submitting) {
		return ErrBusy
	}
	err := s.form.Submit(ctx, func(ctx context.Context, c credentials) error {
		return s.client.Login(ctx, c.Email, c.Password)
	}, nil)
	s.surface.settle(err, msgLoginFailed)
	if err == nil {
		s.nav.Reset(s.Home)
	}
	return nil
}

// Links is a static menu of views.
type Links struct {
	surface Surface
	view    View
	links   []View
}

// NewMenu is the mobile home: catalog types and order events, plus the
// web pages reachable from the same client.
func NewMenu() *Links {
	return &Links{view: ViewMenu, links: []View{
		ViewCatalogTypes, ViewOrderEvents, ViewAdmin, ViewPublicOrders, ViewPublicReservations,
	}}
}

// NewAdminHome is the admin landing page.
func NewAdminHome() *Links {
	return &Links{view: ViewAdmin, links: []View{
		ViewAdminTests, ViewAdminOrders, ViewAdminShows, ViewAdminReservations,
	}}
}

func (s *Links) View() View        { return s.view }
func (s *Links) Surface() *Surface { return &s.surface }

func (s *Links) Load(context.Context) error {
	if !s.surface.begin(Loading) {
		return ErrBusy
	}
	s.surface.settle(nil, "")
	return nil
}

func (s *Links) Rows() ([]string, [][]string) {
	rows := make([][]string, 0, len(s.links))
	for _, v := range s.links {
		rows = append(rows, []string{string(v)})
	}
	return []string{"Open"}, rows
}

// Links returns the views the menu offers.
func (s *Links) Links() []View { return append([]View(nil), s.links...) }

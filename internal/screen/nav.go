package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/lab-desk/internal/labapi"
)

// View names a navigable screen.
type View string

const (
	ViewLogin        View = "login"
	ViewMenu         View = "menu"
	ViewCatalogTypes View = "catalog-types"
	ViewOrderEvents  View = "order-events"

	ViewAdmin              View = "admin"
	ViewAdminTests         View = "admin-tests"
	ViewAdminOrders        View = "admin-orders"
	ViewAdminShows         View = "admin-shows"
	ViewAdminReservations  View = "admin-reservations"
	ViewPublicOrders       View = "public-orders"
	ViewPublicReservations View = "public-reservations"
)

// Views lists every view in menu order.
var Views = []View{
	ViewLogin, ViewMenu, ViewCatalogTypes, ViewOrderEvents,
	ViewAdmin, ViewAdminTests, ViewAdminOrders, ViewAdminShows, ViewAdminReservations,
	ViewPublicOrders, ViewPublicReservations,
}

// ErrLoginRequired is returned when a protected view is opened without
// a session.
var ErrLoginRequired = errors.New("login required")

// ErrUnknownView is returned for a name that is not a View.
var ErrUnknownView = errors.New("unknown view")

// Protected reports whether v needs a signed-in session.
func (v View) Protected() bool {
	switch v {
	case ViewLogin, ViewPublicOrders, ViewPublicReservations:
		return false
	}
	return true
}

// ParseView resolves a view name.
func ParseView(name string) (View, error) {
	for _, v := range Views {
		if string(v) == name {
			return v, nil
		}
	}
	return "", ErrUnknownView
}

// Navigator is the view stack of one client.  It gates protected views
// on the shared session and owns the logout teardown.
type Navigator struct {
	mu     sync.Mutex
	client *labapi.Client
	stack  []View
}

// NewNavigator starts at the login view.
func NewNavigator(client *labapi.Client) *Navigator {
	return &Navigator{client: client, stack: []View{ViewLogin}}
}

// Current is the view on top of the stack.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Push opens v on top of the current view.
func (n *Navigator) Push(v View) error {
	if v.Protected() && !n.client.Session().LoggedIn() {
		return ErrLoginRequired
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = append(n.stack, v)
	return nil
}

// Back pops the current view.  The root view stays.
func (n *Navigator) Back() (View, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return n.stack[0], false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.stack[len(n.stack)-1], true
}

// Reset replaces the whole stack with v.
func (n *Navigator) Reset(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = []View{v}
}

// Logout revokes the session on the server, clears it locally and
// returns to the login view.  The server error, if any, is returned
// after the local teardown has happened.
func (n *Navigator) Logout(ctx context.Context) error {
	err := n.client.Logout(ctx)
	n.Reset(ViewLogin)
	return err
}

package screen

import "github.com/iliyamo/lab-desk/internal/labapi"

// Mount builds a fresh screen for v.  email pre-fills the login form.
func Mount(v View, client *labapi.Client, nav *Navigator, email string) (Screen, error) {
	switch v {
	case ViewLogin:
		return NewLogin(client, nav, email), nil
	case ViewMenu:
		return NewMenu(), nil
	case ViewCatalogTypes:
		return NewCatalogTypes(client), nil
	case ViewOrderEvents:
		return NewOrderEvents(client), nil
	case ViewAdmin:
		return NewAdminHome(), nil
	case ViewAdminTests:
		return NewAdminTests(client), nil
	case ViewAdminOrders:
		return NewAdminOrders(client), nil
	case ViewAdminShows:
		return NewAdminShows(client), nil
	case ViewAdminReservations:
		return NewAdminReservations(client), nil
	case ViewPublicOrders:
		return NewPublicOrders(client), nil
	case ViewPublicReservations:
		return NewPublicReservations(client), nil
	}
	return nil, ErrUnknownView
}

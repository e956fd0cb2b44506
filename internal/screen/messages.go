package screen

// Fixed user-facing messages, one per operation.
const (
	msgLoginRequired = "Email and password are required."
	msgLoginFailed   = "Login failed. Check your credentials."

	msgCatalogLoad    = "Could not load the catalog types."
	msgCatalogName    = "Name is required."
	msgCatalogCreate  = "Could not create the test type."
	msgCatalogDelete  = "Could not delete the record."
	msgEventsLoad     = "Connection error. Check the orders and events backends."
	msgEventsOrder    = "Select an order."
	msgEventsType     = "Select an event type."
	msgEventsCreate   = "Could not record the event."
	msgEventsDelete   = "Could not delete the event."
	msgOrdersLoad     = "Could not load the orders. Check your session."
	msgOrdersTest     = "A lab test must be selected."
	msgOrdersPatient  = "Patient name is required."
	msgOrdersSave     = "Could not save the order."
	msgOrdersDelete   = "Could not delete the order."
	msgTestsLoad      = "Could not load tests. Logged in? Admin token?"
	msgTestsName      = "test_name is required."
	msgTestsSave      = "Could not save the test. Admin token?"
	msgTestsDelete    = "Could not delete the test. Linked orders? Admin token?"
	msgShowsLoad      = "Could not load shows. Logged in? Admin token?"
	msgShowsTitle     = "movie_title is required."
	msgShowsSave      = "Could not save the show. Admin token?"
	msgShowsDelete    = "Could not delete the show. Linked reservations? Admin token?"
	msgReservLoad     = "Could not load reservations. Logged in? Admin token?"
	msgReservShow     = "Select a show."
	msgReservCustomer = "customer_name is required."
	msgReservSeats    = "seats must be >= 1."
	msgReservSave     = "Could not save the reservation. Admin token?"
	msgReservDelete   = "Could not delete the reservation. Admin token?"
	msgPublicLoad     = "Could not load the public list. Is the backend running?"
	noResults         = "No results"
)

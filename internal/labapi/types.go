package labapi

import "encoding/json"

// Read-side records.  Payload types for writes live in payload.go.

// Order is a lab order.  Status is one of the Order* constants.
type Order struct {
	ID            ID     `json:"id"`
	TestID        ID     `json:"test_id"`
	PatientName   string `json:"patient_name"`
	Status        string `json:"status"`
	ResultSummary string `json:"result_summary,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

const (
	OrderCreated    = "CREATED"
	OrderProcessing = "PROCESSING"
	OrderCompleted  = "COMPLETED"
	OrderCancelled  = "CANCELLED"
)

// OrderStatuses lists the order states in workflow order.
var OrderStatuses = []string{OrderCreated, OrderProcessing, OrderCompleted, OrderCancelled}

// Test is an orderable lab test.  Price is kept as the decimal the
// server sent.
type Test struct {
	ID          ID          `json:"id"`
	TestName    string      `json:"test_name"`
	SampleType  string      `json:"sample_type"`
	Price       json.Number `json:"price"`
	IsAvailable int         `json:"is_available"`
}

// CatalogType is a mobile catalog entry.  The id arrives as "id" or
// "_id" depending on the store.
type CatalogType struct {
	ID          ID       `json:"id"`
	TestName    string   `json:"test_name"`
	Category    string   `json:"category,omitempty"`
	NormalRange string   `json:"normal_range,omitempty"`
	Method      *float64 `json:"method,omitempty"`
	IsActive    bool     `json:"is_active"`
}

func (c *CatalogType) UnmarshalJSON(data []byte) error {
	type plain CatalogType
	var aux struct {
		plain
		AltID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = CatalogType(aux.plain)
	if c.ID.IsZero() {
		c.ID = aux.AltID
	}
	return nil
}

// OrderEvent is one entry of an order's activity trail.  LabOrderID may
// point at an order that no longer exists.
type OrderEvent struct {
	ID         ID     `json:"id"`
	LabOrderID ID     `json:"lab_order_id"`
	EventType  string `json:"event_type"`
	Source     string `json:"source"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func (e *OrderEvent) UnmarshalJSON(data []byte) error {
	type plain OrderEvent
	var aux struct {
		plain
		AltID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = OrderEvent(aux.plain)
	if e.ID.IsZero() {
		e.ID = aux.AltID
	}
	return nil
}

// EventTypes are the event types the clients offer.
var EventTypes = []string{"CREATED", "PROCESSING", "COMPLETED", "CANCELLED", "RESULT_UPDATED"}

// Show is a screening that reservations point at.
type Show struct {
	ID         ID     `json:"id"`
	MovieTitle string `json:"movie_title"`
}

// Reservation books seats on a show.  ShowTitle is filled by the server.
type Reservation struct {
	ID           ID     `json:"id"`
	Show         ID     `json:"show"`
	ShowTitle    string `json:"show_title,omitempty"`
	CustomerName string `json:"customer_name"`
	Seats        int    `json:"seats"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
}

const (
	ReservationReserved  = "RESERVED"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

var ReservationStatuses = []string{ReservationReserved, ReservationConfirmed, ReservationCancelled}

// Key functions for keyed collections.

func (o Order) Key() ID       { return o.ID }
func (t Test) Key() ID        { return t.ID }
func (c CatalogType) Key() ID { return c.ID }
func (e OrderEvent) Key() ID  { return e.ID }
func (s Show) Key() ID        { return s.ID }
func (r Reservation) Key() ID { return r.ID }

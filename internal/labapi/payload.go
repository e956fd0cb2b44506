package labapi

// Write payloads.  They never carry the record id or server-computed
// fields such as created_at or show_title.

type OrderPayload struct {
	TestID        ID     `json:"test_id"`
	PatientName   string `json:"patient_name"`
	Status        string `json:"status"`
	ResultSummary string `json:"result_summary"`
}

type TestPayload struct {
	TestName    string `json:"test_name"`
	SampleType  string `json:"sample_type"`
	Price       string `json:"price,omitempty"`
	IsAvailable int    `json:"is_available"`
}

type ShowPayload struct {
	MovieTitle string `json:"movie_title"`
}

type ReservationPayload struct {
	Show         ID     `json:"show"`
	CustomerName string `json:"customer_name"`
	Seats        int    `json:"seats"`
	Status       string `json:"status"`
}

type CatalogTypePayload struct {
	TestName    string   `json:"test_name"`
	Category    string   `json:"category,omitempty"`
	NormalRange string   `json:"normal_range,omitempty"`
	Method      *float64 `json:"method,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// SourceMobile tags order events recorded from the field client.
const SourceMobile = "MOBILE"

// OrderEventCreate has a fixed shape:
// {lab_order_id, event_type, source: "MOBILE", note?}.
type OrderEventCreate struct {
	LabOrderID ID     `json:"lab_order_id"`
	EventType  string `json:"event_type"`
	Source     string `json:"source"`
	Note       string `json:"note,omitempty"`
}

// NewOrderEventCreate builds the payload with Source set to MOBILE.
func NewOrderEventCreate(order ID, eventType, note string) OrderEventCreate {
	return OrderEventCreate{LabOrderID: order, EventType: eventType, Source: SourceMobile, Note: note}
}

// Package queue moves order activity over RabbitMQ: the API publishes an
// OrderActivity whenever an order event is recorded or an order changes
// status, and a background consumer appends each one to a log file.
package queue

// OrderActivity is the message body on the order events queue.  It is
// self-contained so consumers never need to query the stores.
type OrderActivity struct {
	OrderID     uint64 `json:"lab_order_id"`
	EventID     string `json:"event_id,omitempty"` // set when the activity is a stored order event
	EventType   string `json:"event_type"`
	Source      string `json:"source"`
	Note        string `json:"note,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	OccurredAt  string `json:"occurred_at"` // RFC 3339, UTC
}

// Sources for activities the API emits on its own behalf.
const (
	SourceAPI = "API"
)

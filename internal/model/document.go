package model

import "time"

// Catalog types and order events are schemaless documents kept in Redis.
// Their identifiers are server-generated strings serialized as "_id", the
// same shape a document database would hand back.

// CatalogType describes a kind of lab test offered in the mobile catalog.
type CatalogType struct {
	ID          string   `json:"_id"`
	TestName    string   `json:"test_name"`
	Category    string   `json:"category,omitempty"`
	NormalRange string   `json:"normal_range,omitempty"`
	Method      *float64 `json:"method,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// OrderEvent is an entry in the activity trail of a lab order.  LabOrderID
// points into the relational `lab_orders` table; nothing enforces it, so
// readers must tolerate dangling references.
type OrderEvent struct {
	ID         string    `json:"_id"`
	LabOrderID uint64    `json:"lab_order_id"`
	EventType  string    `json:"event_type"`
	Source     string    `json:"source"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event types offered by the clients.  The store accepts any non-empty
// value.
var OrderEventTypes = []string{"CREATED", "PROCESSING", "COMPLETED", "CANCELLED", "RESULT_UPDATED"}

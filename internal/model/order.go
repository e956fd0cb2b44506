package model

import "time"

// OrderStatus is the lifecycle state of a lab order.
type OrderStatus string

const (
	OrderCreated    OrderStatus = "CREATED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the four enumerated statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Test is a row of the `lab_tests` table: an orderable laboratory test.
//
// Fields:
//  ID          – primary key identifier.
//  TestName    – display name shown in order selectors.
//  SampleType  – sample kind (blood, urine, ...).
//  Price       – DECIMAL(10,2) kept as its decimal string.
//  IsAvailable – stock of kits; never negative.
type Test struct {
	ID          uint64 `json:"id"`           // lab_tests.id
	TestName    string `json:"test_name"`    // lab_tests.test_name
	SampleType  string `json:"sample_type"`  // lab_tests.sample_type
	Price       string `json:"price"`        // lab_tests.price
	IsAvailable uint32 `json:"is_available"` // lab_tests.is_available
}

// Order is a row of the `lab_orders` table.  An order references the test
// it requests; the test cannot be deleted while orders point at it.
type Order struct {
	ID            uint64      `json:"id"`             // lab_orders.id
	TestID        uint64      `json:"test_id"`        // lab_orders.test_id
	PatientName   string      `json:"patient_name"`   // lab_orders.patient_name
	Status        OrderStatus `json:"status"`         // lab_orders.status
	ResultSummary string      `json:"result_summary"` // lab_orders.result_summary
	CreatedAt     time.Time   `json:"created_at"`     // lab_orders.created_at
}

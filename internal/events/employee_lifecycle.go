package events

import "time"

const EmployeeLifecycleTopic = "staffhub.employee.lifecycle.v1"

const (
	EmployeeCreated     = "employee_created"
	EmployeeDeactivated = "employee_deactivated"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// AuditQueueName is the durable queue carrying passenger audit events.
const AuditQueueName = "passenger.audit"

// Audit actions.
const (
	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionDeleted         = "deleted"
	ActionImportCompleted = "import.completed"
)

// AuditEvent is published whenever a record is created, updated or deleted,
// and once per bulk import. It carries enough information for downstream
// consumers to log or audit without querying the primary database.
type AuditEvent struct {
	Action        string   `json:"action"`
	PassengerID   uint64   `json:"passenger_id,omitempty"`
	Passport      string   `json:"passport,omitempty"`
	PassengerName string   `json:"passenger_name,omitempty"`
	Imported      int      `json:"imported,omitempty"`
	Failed        int      `json:"failed,omitempty"`
	Details       []string `json:"details,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction is the closed set of actions recorded in the audit trail.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionCancel     AuditAction = "cancel"
	AuditActionReactivate AuditAction = "reactivate"
	AuditActionDelete     AuditAction = "delete"
)

// AuditEntity is the closed set of entity kinds an audit record may reference.
type AuditEntity string

const (
	AuditEntityEvent   AuditEntity = "event"
	AuditEntityBooking AuditEntity = "booking"
)

type AuditRecord struct {
	ID         uint              `json:"id"`
	RecordID   uuid.UUID         `json:"record_id"`
	ActorID    uint              `json:"actor_id"`
	Action     AuditAction       `json:"action"`
	EntityType AuditEntity       `json:"entity_type"`
	EntityID   uint              `json:"entity_id"`
	Details    map[string]string `json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}

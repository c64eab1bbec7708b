package domain

import "time"

// AuditEntry is one append-only audit record. Audit writes are best-effort:
// a failed append never fails the operation that triggered it.
type AuditEntry struct {
	AuditID    string            `json:"auditID"`
	ActorID    string            `json:"actorID"`
	Action     string            `json:"action"`
	TargetType string            `json:"targetType"`
	TargetID   string            `json:"targetID"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

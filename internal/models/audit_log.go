package models

import "time"

// AuditLog is the audit_logs table row. Meta is stored as JSONB.
type AuditLog struct {
	AuditID    string            `db:"audit_id"`
	ActorID    string            `db:"actor_id"`
	Action     string            `db:"action"`
	TargetType string            `db:"target_type"`
	TargetID   string            `db:"target_id"`
	Meta       map[string]string `db:"meta"`
	CreatedAt  time.Time         `db:"created_at"`
}

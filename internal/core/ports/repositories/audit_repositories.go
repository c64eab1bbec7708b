package repositories

import (
	"context"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
)

// AuditRecorder appends audit entries. Implementations must be safe to call
// fire-and-forget; callers ignore failures beyond logging them.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, entry domain.AuditEntry) error
}

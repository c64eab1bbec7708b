package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRecorder {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditRecorder = (*PgxAuditRepository)(nil)

// RecordAudit appends one audit row. Meta is stored as JSONB.
func (r *PgxAuditRepository) RecordAudit(ctx context.Context, entry domain.AuditEntry) error {
	query := `
        INSERT INTO audit_logs (audit_id, actor_id, action, target_type, target_id, meta, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		entry.AuditID,
		entry.ActorID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Meta,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	staffRepo := newPgxStaffRepository(dbPool)
	offerRepo := newPgxOfferRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		StaffRepo: staffRepo,
		OfferRepo: offerRepo,
		AuditRepo: auditRepo,
	}
}

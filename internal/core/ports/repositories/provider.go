package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service layer.
type RepositoryProvider struct {
	StaffRepo StaffRepositoryFacade
	OfferRepo OfferRepositoryWithLock
	AuditRepo AuditRecorder
}

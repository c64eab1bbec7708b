package services

// ServiceContainer bundles every service implementation for injection into
// the HTTP layer.
type ServiceContainer struct {
	Staff   StaffSvcFacade
	Offer   OfferSvcFacade
	Payroll PayrollSvc
}

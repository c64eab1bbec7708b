package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
)

// --- Mock StaffRepository ---

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, staffID)
	var staff *domain.Staff
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.Staff)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	args := m.Called(ctx, username)
	var staff *domain.Staff
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.Staff)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) ListStaff(ctx context.Context, filter portsrepo.ListStaffFilter) ([]domain.StaffListEntry, error) {
	args := m.Called(ctx, filter)
	var staff []domain.StaffListEntry
	if args.Get(0) != nil {
		staff = args.Get(0).([]domain.StaffListEntry)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) SetStaffActive(ctx context.Context, staffID string, isActive bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, staffID, isActive, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, staffID, availability, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateFCMToken(ctx context.Context, staffID string, token *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, staffID, token, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock OfferRepository ---

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	var offer *domain.Offer
	if args.Get(0) != nil {
		offer = args.Get(0).(*domain.Offer)
	}
	return offer, args.Error(1)
}

func (m *MockOfferRepository) ListOffersByStaff(ctx context.Context, staffID string, statuses []domain.OfferStatus, limit int) ([]domain.Offer, error) {
	args := m.Called(ctx, staffID, statuses, limit)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Error(1)
}

func (m *MockOfferRepository) ListOffersByStatus(ctx context.Context, status domain.OfferStatus, managerID *string) ([]domain.Offer, error) {
	args := m.Called(ctx, status, managerID)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Error(1)
}

func (m *MockOfferRepository) ListScheduleRange(ctx context.Context, fromDay, toDay string) ([]domain.Offer, error) {
	args := m.Called(ctx, fromDay, toDay)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Error(1)
}

func (m *MockOfferRepository) ListCompletedShifts(ctx context.Context, fromDay, toDay *string, staffID *string) ([]domain.CompletedShift, error) {
	args := m.Called(ctx, fromDay, toDay, staffID)
	var shifts []domain.CompletedShift
	if args.Get(0) != nil {
		shifts = args.Get(0).([]domain.CompletedShift)
	}
	return shifts, args.Error(1)
}

func (m *MockOfferRepository) DashboardCounts(ctx context.Context, managerID *string) (domain.DashboardCounts, error) {
	args := m.Called(ctx, managerID)
	var counts domain.DashboardCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(domain.DashboardCounts)
	}
	return counts, args.Error(1)
}

func (m *MockOfferRepository) SavePlacementAndOffer(ctx context.Context, placement domain.Placement, offer domain.Offer) error {
	args := m.Called(ctx, placement, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) UpdateOfferStatus(ctx context.Context, offer domain.Offer, expected []domain.OfferStatus) (bool, error) {
	args := m.Called(ctx, offer, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) UpdatePlacement(ctx context.Context, placement domain.Placement) error {
	args := m.Called(ctx, placement)
	return args.Error(0)
}

func (m *MockOfferRepository) DeleteOfferCascade(ctx context.Context, offerID, placementID string) error {
	args := m.Called(ctx, offerID, placementID)
	return args.Error(0)
}

// WithStaffLock runs fn against the same mock, standing in for the tx-bound
// facade.
func (m *MockOfferRepository) WithStaffLock(ctx context.Context, staffID string, fn func(txRepo portsrepo.OfferRepositoryFacade) error) error {
	args := m.Called(ctx, staffID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// --- Mock AuditRecorder ---

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) RecordAudit(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock NotificationSender ---

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)
	return args.Error(0)
}

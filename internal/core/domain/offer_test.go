package domain_test

import (
	"testing"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []domain.OfferStatus{
	domain.StatusOffered,
	domain.StatusUserAccepted,
	domain.StatusBookingConfirmed,
	domain.StatusCompleted,
	domain.StatusCancelled,
	domain.StatusRejected,
}

var allActions = []domain.OfferAction{
	domain.ActionAccept,
	domain.ActionReject,
	domain.ActionApprove,
	domain.ActionCancel,
	domain.ActionComplete,
	domain.ActionCheckout,
}

func TestNextStatus_AllowedTransitions(t *testing.T) {
	allowed := map[domain.OfferStatus]map[domain.OfferAction]domain.OfferStatus{
		domain.StatusOffered: {
			domain.ActionAccept: domain.StatusUserAccepted,
			domain.ActionReject: domain.StatusRejected,
			domain.ActionCancel: domain.StatusCancelled,
		},
		domain.StatusUserAccepted: {
			domain.ActionApprove:  domain.StatusBookingConfirmed,
			domain.ActionReject:   domain.StatusRejected,
			domain.ActionCancel:   domain.StatusCancelled,
			domain.ActionComplete: domain.StatusCompleted,
		},
		domain.StatusBookingConfirmed: {
			domain.ActionCancel:   domain.StatusCancelled,
			domain.ActionComplete: domain.StatusCompleted,
			domain.ActionCheckout: domain.StatusCompleted,
		},
	}

	// every (status, action) pair resolves exactly as the table says; every
	// pair outside the table is refused
	for _, from := range allStatuses {
		for _, action := range allActions {
			got, ok := domain.NextStatus(from, action)
			want, wantOK := allowed[from][action]
			assert.Equal(t, wantOK, ok, "transition %s + %s", from, action)
			if wantOK {
				assert.Equal(t, want, got, "transition %s + %s", from, action)
			}
		}
	}
}

func TestNextStatus_TerminalStatusesRejectEverything(t *testing.T) {
	for _, from := range []domain.OfferStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusRejected} {
		for _, action := range allActions {
			_, ok := domain.NextStatus(from, action)
			assert.False(t, ok, "terminal status %s must reject %s", from, action)
		}
	}
}

func TestOfferStatusPredicates(t *testing.T) {
	assert.True(t, domain.StatusOffered.Editable())
	assert.True(t, domain.StatusUserAccepted.Editable())
	assert.False(t, domain.StatusBookingConfirmed.Editable())
	assert.False(t, domain.StatusCompleted.Editable())

	assert.True(t, domain.StatusCompleted.Terminal())
	assert.True(t, domain.StatusCancelled.Terminal())
	assert.True(t, domain.StatusRejected.Terminal())
	assert.False(t, domain.StatusOffered.Terminal())
	assert.False(t, domain.StatusBookingConfirmed.Terminal())
}

func TestCanManageStaff(t *testing.T) {
	managerID := "mgr-1"
	otherManagerID := "mgr-2"

	admin := domain.Staff{StaffID: "adm-1", Role: domain.RoleAdmin}
	manager := domain.Staff{StaffID: managerID, Role: domain.RoleManager}
	owned := domain.Staff{StaffID: "stf-1", Role: domain.RoleStaff, ManagerID: &managerID}
	foreign := domain.Staff{StaffID: "stf-2", Role: domain.RoleStaff, ManagerID: &otherManagerID}
	orphan := domain.Staff{StaffID: "stf-3", Role: domain.RoleStaff}

	assert.True(t, domain.CanManageStaff(admin, owned))
	assert.True(t, domain.CanManageStaff(admin, foreign))
	assert.True(t, domain.CanManageStaff(manager, owned))
	assert.False(t, domain.CanManageStaff(manager, foreign))
	assert.False(t, domain.CanManageStaff(manager, orphan))
	assert.False(t, domain.CanManageStaff(owned, foreign))
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffRole defines the closed set of roles a user can hold.
type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleManager StaffRole = "manager"
	RoleStaff   StaffRole = "staff"
)

// Availability is a staff member's recurring working pattern plus the dates
// they cannot work. It is advisory data for whoever sends offers; conflict
// detection only looks at actual bookings.
type Availability struct {
	Days             []string `json:"days"`     // e.g. ["Mon", "Tue"]
	TimeFrom         string   `json:"timeFrom"` // "HH:MM", empty means unspecified
	TimeTo           string   `json:"timeTo"`
	UnavailableDates []string `json:"unavailableDates"` // ISO YYYY-MM-DD
}

// Staff represents any user of the system: admins, managers and the staff
// members they book onto shifts. A staff record is owned by at most one
// manager via ManagerID.
type Staff struct {
	StaffID      string       `json:"staffID"` // Primary Key (UUID)
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         StaffRole    `json:"role"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	DOB          string       `json:"dob"`
	ManagerID    *string      `json:"managerID,omitempty"` // Owning manager, only meaningful for role=staff
	IsActive     bool         `json:"isActive"`
	FCMToken     *string      `json:"-"` // Device push token, best-effort delivery only
	Availability Availability `json:"availability"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// StaffListEntry is one staff row in a listing, enriched with the figures a
// listing can be sorted by: completed hours and the most recent offer.
type StaffListEntry struct {
	Staff
	TotalHoursWorked decimal.Decimal `json:"totalHoursWorked"`
	LastJobAt        *time.Time      `json:"lastJobAt,omitempty"`
}

// IsManagerial reports whether the role may operate on staff and offers.
func (r StaffRole) IsManagerial() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageStaff is the single ownership predicate for manager/admin actions
// on a staff member: admins manage everyone, managers only the staff records
// they own.
func CanManageStaff(actor Staff, target Staff) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return target.ManagerID != nil && *target.ManagerID == actor.StaffID
	default:
		return false
	}
}

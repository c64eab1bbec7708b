package models

import "time"

// Availability is the JSONB availability document on a users row.
type Availability struct {
	Days             []string `json:"days"`
	TimeFrom         string   `json:"timeFrom"`
	TimeTo           string   `json:"timeTo"`
	UnavailableDates []string `json:"unavailableDates"`
}

// Staff is the users table row: admins, managers and staff in one table,
// discriminated by role.
type Staff struct {
	StaffID      string       `db:"staff_id"`
	Username     string       `db:"username"`
	PasswordHash string       `db:"password_hash"`
	Role         string       `db:"role"`
	FullName     string       `db:"full_name"`
	Email        string       `db:"email"`
	DOB          string       `db:"dob"`
	ManagerID    *string      `db:"manager_id"`
	IsActive     bool         `db:"is_active"`
	FCMToken     *string      `db:"fcm_token"`
	Availability Availability `db:"availability"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

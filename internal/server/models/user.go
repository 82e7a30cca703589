// Package models contains the durable record types shared by repositories
// and services. All authoritative state lives in the database; these structs
// are per-request snapshots.
package models

// User is the identity record, keyed by Name.
//
// Verification holds a pending one-time code (0 = none pending) and
// NewPasswordHash holds the staged hash that replaces PasswordHash once the
// code is confirmed. Signup creates the record inactive; accounts are never
// physically deleted.
type User struct {
	Name            string
	PasswordHash    string
	DisplayName     string
	EmailAddress    string
	Admin           bool
	Active          bool
	Notify          bool
	Verification    uint32
	NewPasswordHash string
}

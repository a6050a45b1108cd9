package models

import "time"

// IdentityAccount is the identity provider's own record of a user: the
// credential side of an account, separate from the profile document.
type IdentityAccount struct {
	UID           string    `gorm:"primaryKey" json:"uid"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	EmailVerified bool      `json:"emailVerified"`
	Disabled      bool      `json:"disabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Profile is the free-form part of a user document. It is kept as a single
// JSON column so profile edits replace the whole sub-object, matching the
// shallow merge semantics of the profile update endpoint.
type Profile struct {
	EducationLevel string   `json:"educationLevel"`
	Interests      []string `json:"interests"`
	LearningGoals  string   `json:"learningGoals"`
	Bio            string   `json:"bio"`
}

// User is the per-user profile document, keyed by the subject id issued by
// the identity provider. Email is normalized to lower case at creation and
// CreatedAt is set once and never overwritten.
type User struct {
	UID              string                      `gorm:"primaryKey" json:"uid"`
	Email            string                      `gorm:"index;not null" json:"email"`
	DisplayName      string                      `json:"displayName"`
	FirstName        string                      `json:"firstName,omitempty"`
	LastName         string                      `json:"lastName,omitempty"`
	PhotoURL         string                      `json:"photoURL"`
	AuthProvider     string                      `json:"authProvider"` // email, google
	Role             string                      `gorm:"default:student" json:"role"` // student, educator
	ProfileCompleted bool                        `json:"profileCompleted"`
	IsActive         bool                        `json:"isActive"`
	TotalSessions    int64                       `json:"totalSessions"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
	LastLogin        time.Time                   `json:"lastLogin"`
	LastActive       time.Time                   `json:"lastActive"`
	Profile          datatypes.JSONType[Profile] `json:"profile"`
}

// GivenName returns the name used to address the user in chat: the stored
// first name when present, otherwise the first word of the display name.
func (u *User) GivenName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	name, _, _ := strings.Cut(strings.TrimSpace(u.DisplayName), " ")
	return name
}

// UserUpdate carries a partial profile update. Nil fields are left untouched
// by the merge; a non-nil Profile replaces the whole sub-object.
type UserUpdate struct {
	DisplayName      *string  `json:"displayName,omitempty"`
	FirstName        *string  `json:"firstName,omitempty"`
	LastName         *string  `json:"lastName,omitempty"`
	PhotoURL         *string  `json:"photoURL,omitempty"`
	Role             *string  `json:"role,omitempty"`
	ProfileCompleted *bool    `json:"profileCompleted,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
	Profile          *Profile `json:"profile,omitempty"`
}

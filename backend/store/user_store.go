package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edugpt/backend/models"
)

// UserStore is the data-access boundary for the users collection.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// Get returns the user document or gorm.ErrRecordNotFound.
func (s *UserStore) Get(uid string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "uid = ?", uid).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create writes a new user document. Email is normalized to lower case and
// the profile sub-object always starts with an empty interest list.
func (s *UserStore) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if user.Role == "" {
		user.Role = "student"
	}
	if user.Profile.Data().Interests == nil {
		profile := user.Profile.Data()
		profile.Interests = []string{}
		user.Profile = datatypes.NewJSONType(profile)
	}
	return s.DB.Create(user).Error
}

// TouchLastLogin updates only lastLogin (merge, not replace).
func (s *UserStore) TouchLastLogin(uid string, at time.Time) error {
	return s.DB.Model(&models.User{}).Where("uid = ?", uid).
		Update("last_login", at).Error
}

// Sync merge-writes a user document keyed by the verified subject id. A
// missing document is created with the full default shape; an existing one
// keeps its createdAt and every field the payload does not name.
func (s *UserStore) Sync(uid, email, displayName, role string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			UID:          uid,
			Email:        email,
			DisplayName:  displayName,
			Role:         role,
			AuthProvider: "email",
			IsActive:     true,
			LastLogin:    now,
			LastActive:   now,
		}
		if err := s.Create(&user); err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"last_login": now}
	if email != "" {
		updates["email"] = strings.ToLower(email)
	}
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if role != "" {
		updates["role"] = role
	}
	if err := s.DB.Model(&models.User{}).Where("uid = ?", uid).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(uid)
}

// ApplyUpdate merges the non-nil fields of upd into the user document.
func (s *UserStore) ApplyUpdate(uid string, upd models.UserUpdate) error {
	updates := map[string]interface{}{}
	if upd.DisplayName != nil {
		updates["display_name"] = *upd.DisplayName
	}
	if upd.FirstName != nil {
		updates["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		updates["last_name"] = *upd.LastName
	}
	if upd.PhotoURL != nil {
		updates["photo_url"] = *upd.PhotoURL
	}
	if upd.Role != nil {
		updates["role"] = *upd.Role
	}
	if upd.ProfileCompleted != nil {
		updates["profile_completed"] = *upd.ProfileCompleted
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}
	if upd.Profile != nil {
		if upd.Profile.Interests == nil {
			upd.Profile.Interests = []string{}
		}
		updates["profile"] = datatypes.NewJSONType(*upd.Profile)
	}
	if len(updates) == 0 {
		return nil
	}
	return s.DB.Model(&models.User{}).Where("uid = ?", uid).Updates(updates).Error
}

// RecordActivity bumps the session counter atomically and touches
// lastActive; concurrent chat calls cannot lose increments.
func (s *UserStore) RecordActivity(uid string, at time.Time) error {
	return s.DB.Model(&models.User{}).Where("uid = ?", uid).Updates(map[string]interface{}{
		"total_sessions": gorm.Expr("total_sessions + ?", 1),
		"last_active":    at,
	}).Error
}

package users

import (
	"time"

	"gorm.io/gorm"
)

// ProfileStore is the mutation surface the trial-plan endpoint needs.
// Kept narrow so handlers can be tested against the in-memory variant.
type ProfileStore interface {
	ByUserID(userID string) (*UserProfile, error)

	// StartTrial sets the plan and both trial dates on the user's profile.
	StartTrial(userID, plan string, start, end time.Time) (*UserProfile, error)
}

type gormProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) ProfileStore {
	return &gormProfileStore{db: db}
}

func (s *gormProfileStore) ByUserID(userID string) (*UserProfile, error) {
	var profile UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *gormProfileStore) StartTrial(userID, plan string, start, end time.Time) (*UserProfile, error) {
	var profile UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	profile.CurrentPlan = plan
	profile.TrialStartDate = &start
	profile.TrialEndDate = &end

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

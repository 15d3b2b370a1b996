package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile carries plan and trial state, one row per user. Created with
// the account on freemium; mutated by trial initialization.
type UserProfile struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_profiles_user_id"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`

	CurrentPlan string `gorm:"type:varchar(20);not null;default:'freemium'"`

	// Set together when a trial plan is chosen.
	TrialStartDate *time.Time `gorm:"column:trial_start_date"`
	TrialEndDate   *time.Time `gorm:"column:trial_end_date"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TrialRemaining returns how much of the timed trial is left at now.
// Zero when no trial was started or the window has passed.
func (p *UserProfile) TrialRemaining(now time.Time) time.Duration {
	if p.TrialEndDate == nil || !now.Before(*p.TrialEndDate) {
		return 0
	}
	return p.TrialEndDate.Sub(now)
}

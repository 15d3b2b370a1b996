package users

import (
	"time"

	"companion-app/internal/domain/users"
)

type UserDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AuthProvider string `json:"auth_provider"`
	IsVerified   bool   `json:"is_verified"`
}

type ProfileDTO struct {
	CurrentPlan    string  `json:"current_plan"`
	TrialStartDate *string `json:"trial_start_date,omitempty"`
	TrialEndDate   *string `json:"trial_end_date,omitempty"`
	TrialDaysLeft  int     `json:"trial_days_left"`
	IsActive       bool    `json:"is_active"`
}

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Profile ProfileDTO `json:"profile"`
}

func BuildMeResponse(user users.User, profile *users.UserProfile) MeResponse {
	now := time.Now()

	daysLeft := 0
	if remaining := profile.TrialRemaining(now); remaining > 0 {
		// round up so a trial with any time left shows at least one day
		daysLeft = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}

	return MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			AuthProvider: user.AuthProvider,
			IsVerified:   user.IsVerified,
		},
		Profile: ProfileDTO{
			CurrentPlan:    profile.CurrentPlan,
			TrialStartDate: rfc3339Ptr(profile.TrialStartDate),
			TrialEndDate:   rfc3339Ptr(profile.TrialEndDate),
			TrialDaysLeft:  daysLeft,
			IsActive:       profile.IsActive,
		},
	}
}

func rfc3339Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

package plans

import (
	"fmt"
	"net/http"
	"time"

	"companion-app/internal/domain/trial"
	"companion-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type InitializeTrialRequest struct {
	ChosenPlan    string `json:"chosenPlan"`
	FingerprintID string `json:"fingerprintId"`
}

type InitializeTrialResponse struct {
	Success      bool   `json:"success"`
	TrialEndDate string `json:"trialEndDate"`
	Plan         string `json:"plan"`
}

// Handler converts an authenticated account onto a timed trial plan.
type Handler struct {
	profiles users.ProfileStore
	trials   trial.Store
}

func NewHandler(profiles users.ProfileStore, trials trial.Store) *Handler {
	return &Handler{profiles: profiles, trials: trials}
}

// InitializeTrialPlan handles POST /initialize-trial-plan (bearer auth).
// Sets the chosen plan and a fixed 7-day window on the caller's profile,
// then best-effort links the anonymous device record to the account.
func (h *Handler) InitializeTrialPlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body InitializeTrialRequest
	if err := c.ShouldBindJSON(&body); err != nil || !users.IsTrialPlan(body.ChosenPlan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chosen plan. Must be monthly_trial or yearly_trial."})
		return
	}

	trialStart := time.Now()
	trialEnd := trialStart.Add(trial.Duration)

	if _, err := h.profiles.StartTrial(userID, body.ChosenPlan, trialStart, trialEnd); err != nil {
		fmt.Println("❌ initialize-trial-plan profile update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// The plan update is the primary effect. Linking the device record is
	// opportunistic: a device that never used the anonymous trial simply has
	// no row, and any other linking failure is logged and swallowed.
	if body.FingerprintID != "" {
		if err := h.trials.LinkToUser(body.FingerprintID, userID); err != nil {
			fmt.Println("⚠️ failed to link device trial to user:", err)
		}
	}

	c.JSON(http.StatusOK, InitializeTrialResponse{
		Success:      true,
		TrialEndDate: trialEnd.UTC().Format(time.RFC3339),
		Plan:         body.ChosenPlan,
	})
}

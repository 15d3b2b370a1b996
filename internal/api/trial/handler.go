package trial

import (
	"fmt"
	"net/http"

	"companion-app/internal/domain/trial"

	"github.com/gin-gonic/gin"
)

// Handler serves the two anonymous trial endpoints. No auth: these run
// before any account exists, keyed only by the device fingerprint.
type Handler struct {
	store trial.Store
}

func NewHandler(store trial.Store) *Handler {
	return &Handler{store: store}
}

// GetStatus handles GET /trial-status?fingerprintId=...
// First access lazily creates the record with zeroed counters; every access
// stamps last_accessed_at.
func (h *Handler) GetStatus(c *gin.Context) {
	fingerprintID := c.Query("fingerprintId")
	if fingerprintID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fingerprintId is required"})
		return
	}

	rec, err := h.store.GetOrCreate(fingerprintID)
	if err != nil {
		fmt.Println("❌ trial-status store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		ChatMessages:    rec.ChatMessagesUsed,
		VoiceNotes:      rec.VoiceNotesUsed,
		IsTrialExceeded: rec.IsTrialExceeded,
	})
}

// UpdateUsage handles POST /update-trial-usage.
// The caller reports cumulative counts; stored values are overwritten, not
// incremented, and the exceeded flag is recomputed from scratch.
func (h *Handler) UpdateUsage(c *gin.Context) {
	var body UpdateUsageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. fingerprintId, chatMessages, and voiceNotes are required."})
		return
	}

	if *body.ChatMessages < 0 || *body.VoiceNotes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usage counts must be non-negative"})
		return
	}

	exceeded := trial.ExceedsLimits(*body.ChatMessages, *body.VoiceNotes)

	if _, err := h.store.Upsert(body.FingerprintID, *body.ChatMessages, *body.VoiceNotes, exceeded); err != nil {
		fmt.Println("❌ update-trial-usage store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, UpdateUsageResponse{IsTrialExceeded: exceeded})
}

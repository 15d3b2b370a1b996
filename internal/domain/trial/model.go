package trial

import "time"

// Free-trial allowance for anonymous devices. Hard-coded on purpose: the
// client bundles the same numbers, so changing them is a coordinated release.
const (
	LimitChatMessages = 3
	LimitVoiceNotes   = 1
)

// Duration of the timed trial granted at plan initialization.
const Duration = 7 * 24 * time.Hour

// DeviceTrial is the single per-device usage record. The fingerprint key is a
// best-effort correlation token derived client-side - NOT an identity
// credential. Collisions between similar devices are accepted.
type DeviceTrial struct {
	FingerprintID     string    `gorm:"column:fingerprint_id;primaryKey"`
	ChatMessagesUsed  int       `gorm:"column:chat_messages_used;not null;default:0"`
	VoiceNotesUsed    int       `gorm:"column:voice_notes_used;not null;default:0"`
	IsTrialExceeded   bool      `gorm:"column:is_trial_exceeded;not null;default:false"`
	ConvertedToUserID *string   `gorm:"column:converted_to_user_id;type:uuid"`
	LastAccessedAt    time.Time `gorm:"column:last_accessed_at"`
	CreatedAt         time.Time
}

// ExceedsLimits is the whole gating rule: a pure threshold comparison over the
// caller-supplied cumulative counts, recomputed from scratch on every update.
func ExceedsLimits(chatMessages, voiceNotes int) bool {
	return chatMessages > LimitChatMessages || voiceNotes > LimitVoiceNotes
}

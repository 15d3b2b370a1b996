package trial

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the explicit record-level contract for device trials. The
// create-if-absent behavior lives here rather than in handlers catching
// not-found errors, so the storage backend can be swapped.
type Store interface {
	// GetOrCreate returns the record for a fingerprint, creating it with
	// zeroed counters on first access. last_accessed_at is stamped either way.
	GetOrCreate(fingerprintID string) (*DeviceTrial, error)

	// Upsert overwrites the stored counters and exceeded flag with the
	// caller-supplied values, creating the record if it does not exist yet.
	Upsert(fingerprintID string, chatMessages, voiceNotes int, exceeded bool) (*DeviceTrial, error)

	// LinkToUser marks the device record as converted to an authenticated
	// account. A missing record is not an error - the user may never have
	// used the anonymous trial.
	LinkToUser(fingerprintID, userID string) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the Postgres-backed Store used in production.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetOrCreate(fingerprintID string) (*DeviceTrial, error) {
	now := time.Now()

	var rec DeviceTrial
	err := s.db.Where("fingerprint_id = ?", fingerprintID).First(&rec).Error
	if err == nil {
		rec.LastAccessedAt = now
		if err := s.db.Model(&rec).Update("last_accessed_at", now).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rec = DeviceTrial{
		FingerprintID:  fingerprintID,
		LastAccessedAt: now,
	}
	// Two first-time readers can race here; the conflict clause keeps the
	// invariant of one row per fingerprint and last-write-wins on the stamp.
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_accessed_at": now}),
	}).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) Upsert(fingerprintID string, chatMessages, voiceNotes int, exceeded bool) (*DeviceTrial, error) {
	rec := DeviceTrial{
		FingerprintID:    fingerprintID,
		ChatMessagesUsed: chatMessages,
		VoiceNotesUsed:   voiceNotes,
		IsTrialExceeded:  exceeded,
		LastAccessedAt:   time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "fingerprint_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"chat_messages_used",
			"voice_notes_used",
			"is_trial_exceeded",
			"last_accessed_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) LinkToUser(fingerprintID, userID string) error {
	// UpdateColumn on zero rows is not an error, which is exactly the
	// tolerated "device never used the trial" case.
	return s.db.Model(&DeviceTrial{}).
		Where("fingerprint_id = ?", fingerprintID).
		Update("converted_to_user_id", userID).Error
}

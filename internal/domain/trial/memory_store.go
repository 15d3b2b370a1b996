package trial

import (
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and local development.
// Behavior mirrors the Postgres store: lazy create, whole-record overwrite,
// silent no-op link for unknown fingerprints.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*DeviceTrial
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*DeviceTrial)}
}

func (s *MemoryStore) GetOrCreate(fingerprintID string) (*DeviceTrial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if rec, ok := s.records[fingerprintID]; ok {
		rec.LastAccessedAt = now
		cp := *rec
		return &cp, nil
	}

	rec := &DeviceTrial{
		FingerprintID:  fingerprintID,
		LastAccessedAt: now,
		CreatedAt:      now,
	}
	s.records[fingerprintID] = rec
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Upsert(fingerprintID string, chatMessages, voiceNotes int, exceeded bool) (*DeviceTrial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec, ok := s.records[fingerprintID]
	if !ok {
		rec = &DeviceTrial{FingerprintID: fingerprintID, CreatedAt: now}
		s.records[fingerprintID] = rec
	}
	rec.ChatMessagesUsed = chatMessages
	rec.VoiceNotesUsed = voiceNotes
	rec.IsTrialExceeded = exceeded
	rec.LastAccessedAt = now

	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) LinkToUser(fingerprintID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[fingerprintID]; ok {
		id := userID
		rec.ConvertedToUserID = &id
	}
	return nil
}

// Get returns a copy of the stored record without touching last_accessed_at.
// Test helper; not part of the Store contract.
func (s *MemoryStore) Get(fingerprintID string) (*DeviceTrial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[fingerprintID]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// Len reports how many device records exist. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

package users

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryProfileStore backs handler tests without a database. Returns
// gorm.ErrRecordNotFound for unknown users so callers see the same
// sentinel as the Postgres store.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*UserProfile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*UserProfile)}
}

// Seed inserts a freemium profile for userID and returns it.
func (s *MemoryProfileStore) Seed(userID string) *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := &UserProfile{
		ID:          uuid.NewString(),
		UserID:      userID,
		CurrentPlan: PlanFreemium,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.profiles[userID] = p
	cp := *p
	return &cp
}

func (s *MemoryProfileStore) ByUserID(userID string) (*UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryProfileStore) StartTrial(userID, plan string, start, end time.Time) (*UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.CurrentPlan = plan
	p.TrialStartDate = &start
	p.TrialEndDate = &end
	p.UpdatedAt = time.Now()

	cp := *p
	return &cp, nil
}

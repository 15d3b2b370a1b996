package trial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceedsLimits(t *testing.T) {
	tests := []struct {
		name     string
		chat     int
		voice    int
		exceeded bool
	}{
		{"zero usage", 0, 0, false},
		{"at chat limit", 3, 0, false},
		{"over chat limit", 4, 0, true},
		{"at voice limit", 0, 1, false},
		{"over voice limit", 0, 2, true},
		{"at both limits", 3, 1, false},
		{"over both limits", 4, 2, true},
		{"chat over, voice under", 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exceeded, ExceedsLimits(tt.chat, tt.voice))
		})
	}
}

func TestMemoryStoreGetOrCreate(t *testing.T) {
	t.Run("first access creates zeroed record", func(t *testing.T) {
		s := NewMemoryStore()

		rec, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)
		assert.Equal(t, "fp-1", rec.FingerprintID)
		assert.Zero(t, rec.ChatMessagesUsed)
		assert.Zero(t, rec.VoiceNotesUsed)
		assert.False(t, rec.IsTrialExceeded)
		assert.False(t, rec.LastAccessedAt.IsZero())
	})

	t.Run("second access reuses the record", func(t *testing.T) {
		s := NewMemoryStore()

		first, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)
		second, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)

		assert.Equal(t, first.ChatMessagesUsed, second.ChatMessagesUsed)
		assert.Equal(t, 1, s.Len(), "no duplicate record for the same fingerprint")
	})

	t.Run("stamps last_accessed_at on every read", func(t *testing.T) {
		s := NewMemoryStore()

		first, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)

		assert.True(t, second.LastAccessedAt.After(first.LastAccessedAt))
	})
}

func TestMemoryStoreUpsert(t *testing.T) {
	t.Run("overwrites existing counters", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)

		rec, err := s.Upsert("fp-1", 4, 0, true)
		require.NoError(t, err)
		assert.Equal(t, 4, rec.ChatMessagesUsed)
		assert.True(t, rec.IsTrialExceeded)

		// counters are absolute, not increments
		rec, err = s.Upsert("fp-1", 2, 1, false)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.ChatMessagesUsed)
		assert.Equal(t, 1, rec.VoiceNotesUsed)
		assert.False(t, rec.IsTrialExceeded)
	})

	t.Run("creates the record when absent", func(t *testing.T) {
		s := NewMemoryStore()

		rec, err := s.Upsert("never-seen", 1, 1, false)
		require.NoError(t, err)
		assert.Equal(t, "never-seen", rec.FingerprintID)
		assert.Equal(t, 1, rec.ChatMessagesUsed)
	})
}

func TestMemoryStoreLinkToUser(t *testing.T) {
	t.Run("links existing record", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.GetOrCreate("fp-1")
		require.NoError(t, err)

		require.NoError(t, s.LinkToUser("fp-1", "user-42"))

		rec, ok := s.Get("fp-1")
		require.True(t, ok)
		require.NotNil(t, rec.ConvertedToUserID)
		assert.Equal(t, "user-42", *rec.ConvertedToUserID)
	})

	t.Run("missing record is not an error", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.LinkToUser("never-seen", "user-42"))
	})
}

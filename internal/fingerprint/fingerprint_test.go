package fingerprint_test

import (
	"net/http/httptest"
	"testing"

	"companion-app/internal/fingerprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignals() fingerprint.Signals {
	return fingerprint.Signals{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		Language:       "en-US",
		Screen:         "1512x982",
		TimezoneOffset: -120,
		CanvasData:     "data:image/png;base64,iVBORw0KGgo=",
	}
}

func TestToken(t *testing.T) {
	t.Run("deterministic for identical snapshots", func(t *testing.T) {
		s := testSignals()
		assert.Equal(t, s.Token(), s.Token())
	})

	t.Run("radix-36 encoding", func(t *testing.T) {
		token := testSignals().Token()
		require.NotEmpty(t, token)
		assert.Regexp(t, "^[0-9a-z]+$", token)
	})

	t.Run("different user agents produce different tokens", func(t *testing.T) {
		a := testSignals()
		b := testSignals()
		b.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

		assert.NotEqual(t, a.Token(), b.Token())
	})

	t.Run("timezone offset is part of the snapshot", func(t *testing.T) {
		a := testSignals()
		b := testSignals()
		b.TimezoneOffset = 300

		assert.NotEqual(t, a.Token(), b.Token())
	})

	t.Run("empty snapshot still yields a token", func(t *testing.T) {
		// hash of "|||0|" - same-model devices with blank signals collide,
		// which the gating logic tolerates
		assert.NotEmpty(t, fingerprint.Signals{}.Token())
	})
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/trial-status", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")

	s := fingerprint.FromRequest(req)

	assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", s.UserAgent)
	assert.Equal(t, "de-DE", s.Language)
	assert.NotEmpty(t, s.Token())
}

// Package fingerprint derives the anonymous-device token used to key trial
// records. The token is a best-effort correlation key: deterministic for one
// environment snapshot, not unique across devices and not stable across
// browser updates. It must never be treated as an identity credential.
package fingerprint

import (
	"net/http"
	"strconv"
	"strings"
)

// Signals is a snapshot of the ambient characteristics the token is hashed
// from. Field order matters: the concatenation is part of the wire-level
// compatibility with tokens generated by the web client.
type Signals struct {
	UserAgent      string
	Language       string
	Screen         string // "WIDTHxHEIGHT"
	TimezoneOffset int    // minutes west of UTC, as the browser reports it
	CanvasData     string // rendered-canvas pixel signature (data URL)
}

// Token hashes the signals into a short radix-36 string. The hash is the
// 32-bit rolling hash h = h*31 + ch used by the web client, absolute value
// taken before encoding, so both sides derive identical tokens from
// identical snapshots.
func (s Signals) Token() string {
	joined := strings.Join([]string{
		s.UserAgent,
		s.Language,
		s.Screen,
		strconv.Itoa(s.TimezoneOffset),
		s.CanvasData,
	}, "|")

	var hash int32
	for _, ch := range []byte(joined) {
		hash = (hash << 5) - hash + int32(ch)
	}

	v := int64(hash)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

// FromRequest builds a Signals snapshot from what an HTTP request carries.
// Screen, timezone and canvas are browser-only, so a server-derived token is
// coarser than a client-generated one; it is still good enough to correlate
// repeat calls from the same client when no client token was supplied.
func FromRequest(r *http.Request) Signals {
	return Signals{
		UserAgent: r.UserAgent(),
		Language:  primaryLanguage(r.Header.Get("Accept-Language")),
	}
}

func primaryLanguage(acceptLanguage string) string {
	if i := strings.IndexAny(acceptLanguage, ",;"); i >= 0 {
		acceptLanguage = acceptLanguage[:i]
	}
	return strings.TrimSpace(acceptLanguage)
}

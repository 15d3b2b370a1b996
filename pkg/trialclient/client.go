// Package trialclient is the Go counterpart of the web client's trial hook:
// it derives and caches the device fingerprint, fetches trial status once,
// and reports cumulative usage after each chat message or voice note.
package trialclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"companion-app/internal/fingerprint"
)

type Status struct {
	ChatMessages    int  `json:"chatMessages"`
	VoiceNotes      int  `json:"voiceNotes"`
	IsTrialExceeded bool `json:"isTrialExceeded"`
}

type InitializeResult struct {
	Success      bool   `json:"success"`
	TrialEndDate string `json:"trialEndDate"`
	Plan         string `json:"plan"`
}

// APIError carries the server's status code and error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trialclient: server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	cache   TokenCache
	signals fingerprint.Signals
	bearer  string

	mu            sync.Mutex
	fingerprintID string
	status        *Status
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithTokenCache(cache TokenCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBearerToken sets the JWT used by InitializeTrialPlan.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.bearer = token }
}

func New(baseURL string, signals fingerprint.Signals, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
		cache:   &MemoryCache{},
		signals: signals,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FingerprintID returns the cached device token, generating and persisting
// it on first call.
func (c *Client) FingerprintID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fingerprintIDLocked()
}

func (c *Client) fingerprintIDLocked() string {
	if c.fingerprintID != "" {
		return c.fingerprintID
	}
	if token, ok := c.cache.Get(); ok {
		c.fingerprintID = token
		return token
	}
	token := c.signals.Token()
	if err := c.cache.Put(token); err != nil {
		// a cache miss next start just means a fresh trial record
		fmt.Println("⚠️ trialclient: failed to persist fingerprint:", err)
	}
	c.fingerprintID = token
	return token
}

// Status fetches the current trial counters, creating the server record on
// first contact, and remembers them for the Record helpers.
func (c *Client) Status(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := url.Values{"fingerprintId": {c.fingerprintIDLocked()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/trial-status?"+q.Encode(), nil)
	if err != nil {
		return Status{}, err
	}

	var status Status
	if err := c.do(req, &status); err != nil {
		return Status{}, err
	}
	c.status = &status
	return status, nil
}

// ReportUsage sends the caller's cumulative counts. The server overwrites
// its stored values with these.
func (c *Client) ReportUsage(ctx context.Context, chatMessages, voiceNotes int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reportUsageLocked(ctx, chatMessages, voiceNotes)
}

func (c *Client) reportUsageLocked(ctx context.Context, chatMessages, voiceNotes int) (bool, error) {
	payload := map[string]interface{}{
		"fingerprintId": c.fingerprintIDLocked(),
		"chatMessages":  chatMessages,
		"voiceNotes":    voiceNotes,
	}

	var resp struct {
		IsTrialExceeded bool `json:"isTrialExceeded"`
	}
	if err := c.post(ctx, "/update-trial-usage", payload, "", &resp); err != nil {
		return false, err
	}

	c.status = &Status{
		ChatMessages:    chatMessages,
		VoiceNotes:      voiceNotes,
		IsTrialExceeded: resp.IsTrialExceeded,
	}
	return resp.IsTrialExceeded, nil
}

// RecordChatMessage bumps the local chat counter and reports the new totals.
// Call Status first so the baseline reflects the server record.
func (c *Client) RecordChatMessage(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	chat, voice := c.countersLocked()
	return c.reportUsageLocked(ctx, chat+1, voice)
}

// RecordVoiceNote bumps the local voice-note counter and reports the new totals.
func (c *Client) RecordVoiceNote(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	chat, voice := c.countersLocked()
	return c.reportUsageLocked(ctx, chat, voice+1)
}

func (c *Client) countersLocked() (chat, voice int) {
	if c.status == nil {
		return 0, 0
	}
	return c.status.ChatMessages, c.status.VoiceNotes
}

// InitializeTrialPlan converts the authenticated account onto a trial plan
// and links this device's anonymous record to it.
func (c *Client) InitializeTrialPlan(ctx context.Context, chosenPlan string) (InitializeResult, error) {
	c.mu.Lock()
	bearer := c.bearer
	payload := map[string]interface{}{
		"chosenPlan":    chosenPlan,
		"fingerprintId": c.fingerprintIDLocked(),
	}
	c.mu.Unlock()

	if bearer == "" {
		return InitializeResult{}, fmt.Errorf("trialclient: not authenticated")
	}

	var result InitializeResult
	if err := c.post(ctx, "/initialize-trial-plan", payload, bearer, &result); err != nil {
		return InitializeResult{}, err
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, bearer string, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

package trialclient

import (
	"os"
	"strings"
	"sync"
)

// TokenCache persists the generated fingerprint token so repeated client
// starts reuse it instead of regenerating (the web client keeps it in
// localStorage; CLI and test callers pick one of these).
type TokenCache interface {
	Get() (string, bool)
	Put(token string) error
}

// MemoryCache holds the token for the lifetime of the process.
type MemoryCache struct {
	mu    sync.Mutex
	token string
}

func (c *MemoryCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.token != ""
}

func (c *MemoryCache) Put(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	return nil
}

// FileCache stores the token in a plain file, created on first use.
type FileCache struct {
	Path string
}

func (c *FileCache) Get() (string, bool) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (c *FileCache) Put(token string) error {
	return os.WriteFile(c.Path, []byte(token+"\n"), 0o600)
}

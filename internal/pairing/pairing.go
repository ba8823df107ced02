// Package pairing holds the most recent pairing code issued by the chat
// transport. The code lives only in process memory: one slot, overwritten on
// each pairing event, gone on restart.
package pairing

import (
	"sync"
	"time"
)

type Cell struct {
	mu       sync.RWMutex
	code     string
	issuedAt time.Time
}

// Set stores a freshly issued code, replacing any previous one.
func (c *Cell) Set(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = code
	c.issuedAt = time.Now()
}

// Current returns the latest code, or false when none has been issued yet.
func (c *Cell) Current() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code, !c.issuedAt.IsZero()
}

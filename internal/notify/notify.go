// Package notify keeps the short-lived notices shown on the dashboard.
// Each notice removes itself after a fixed delay unless dismissed first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"agripoultry/internal/domain"
)

const (
	KindSuccess = "success"
	KindWarning = "warning"

	DefaultTTL = 3 * time.Second
)

type pending struct {
	n     domain.Notification
	timer *time.Timer
}

type Center struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items []pending
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Push shows a notice and schedules its removal.
func (c *Center) Push(kind, message string) domain.Notification {
	n := domain.Notification{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: c.now()}
	id := n.ID

	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.AfterFunc(c.ttl, func() { c.remove(id) })
	c.items = append(c.items, pending{n: n, timer: t})
	return n
}

// Dismiss removes a notice before its timer fires. It reports whether the
// notice was still showing.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.items {
		if p.n.ID == id {
			p.timer.Stop()
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.items {
		if p.n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// List returns the notices currently showing, oldest first.
func (c *Center) List() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, 0, len(c.items))
	for _, p := range c.items {
		out = append(out, p.n)
	}
	return out
}

// Close stops every pending timer and clears the list.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.items {
		p.timer.Stop()
	}
	c.items = nil
}

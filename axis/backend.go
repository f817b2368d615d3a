// Package axis lays out time axes on top of a temporal backend, see [Scale].
package axis

import (
	"sync"

	"github.com/curtisnewbie/timeaxis/adapter"
)

// Temporal backend, implemented by *adapter.Adapter.
type Backend = adapter.Backend

// Rendering context that owns exactly one temporal backend slot.
type Host interface {
	UseBackend(b Backend)
	Backend() Backend
}

var (
	_ Host         = (*Context)(nil)
	_ adapter.Host = (*Context)(nil)
)

// Context holds the temporal backend of one rendering context.
//
// Installing a backend replaces the previous one, backends are never stacked. Context is safe for concurrent use.
type Context struct {
	mu      sync.RWMutex
	backend Backend
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) UseBackend(b Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend = b
}

// Installed backend, nil if none.
func (c *Context) Backend() Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend
}

package pipeline

import (
	"sync"

	"github.com/google/uuid"
)

// Well-known context keys populated by the query-planning stage and read by
// supergraph- and subgraph-tier selectors.
const (
	OperationNameKey = "operation_name"
	OperationKindKey = "operation_kind"
)

// Context is the string-keyed value map shared by all stages of a single
// pipeline execution. Values are JSON-like scalars or structures set by
// earlier stages; selectors only ever read from it.
type Context struct {
	id string

	mu      sync.RWMutex
	entries map[string]any
}

// NewContext creates an empty pipeline context with a fresh request id.
func NewContext() *Context {
	return &Context{
		id:      uuid.NewString(),
		entries: make(map[string]any),
	}
}

// ID returns the request correlation id assigned at creation.
func (c *Context) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// Set stores a value under key, replacing any previous value.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Get returns the value stored under key, or false when the key is unset.
// A nil Context behaves like an empty one.
func (c *Context) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (c *Context) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

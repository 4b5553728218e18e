// Package container is a small service locator used to wire repositories
// and services at startup. It is a constructed value, not process-global
// state: each App (and each test) builds its own.
package container

import (
	"fmt"
	"sync"
)

// Factory builds one service instance.
type Factory func(c *Container) any

// Container holds registered factories and their cached instances.
type Container struct {
	mu        sync.Mutex
	factories map[string]Factory
	instances map[string]any
}

// New returns an empty container.
func New() *Container {
	return &Container{
		factories: make(map[string]Factory),
		instances: make(map[string]any),
	}
}

// Register stores a factory under token. With singleton=false the cached
// instance for the token is evicted, forcing the next Resolve to rerun
// the factory; that run's result is cached again until the next
// Register. This reset-once behavior is long-standing and callers rely
// on it, so it is kept as-is.
func (c *Container) Register(token string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[token] = factory
	if !singleton {
		delete(c.instances, token)
	}
}

// Resolve returns the instance for token, building and caching it on
// first use. Unknown tokens are an error. The factory runs outside the
// lock so it may resolve its own dependencies.
func (c *Container) Resolve(token string) (any, error) {
	c.mu.Lock()
	if inst, ok := c.instances[token]; ok {
		c.mu.Unlock()
		return inst, nil
	}
	factory, ok := c.factories[token]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("container: no factory registered for %q", token)
	}

	inst := factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.instances[token]; ok {
		return cached, nil
	}
	c.instances[token] = inst
	return inst, nil
}

// MustResolve is Resolve that panics on unknown tokens. Used during
// startup wiring where a missing registration is a programming error.
func (c *Container) MustResolve(token string) any {
	inst, err := c.Resolve(token)
	if err != nil {
		panic(err)
	}
	return inst
}

// Reset drops all factories and cached instances.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories = make(map[string]Factory)
	c.instances = make(map[string]any)
}

// Package session owns the authentication state machine for the client.
// State is derived from the stored credential plus a bootstrap flag;
// there is no auth state independent of the credential store.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/alprnalcri/dyslexia-cli/internal/store"
)

// AuthState is the three-valued session status.
type AuthState int

const (
	StateLoading AuthState = iota // stored credential not read yet
	StateAuthenticated
	StateUnauthenticated
)

// String returns a display label for the state.
func (s AuthState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Controller owns the authentication state machine. It is the sole
// writer of the credential for sign-in/sign-out transitions.
type Controller struct {
	store *store.Store

	mu           sync.Mutex
	bootstrapped bool
	hasToken     bool
	onChange     func(AuthState)
}

// NewController creates a Controller backed by st. The controller starts
// in StateLoading until Bootstrap has run.
func NewController(st *store.Store) *Controller {
	return &Controller{store: st}
}

// OnChange registers a callback invoked after every state transition.
// Intended for the UI collaborator; must not block.
func (c *Controller) OnChange(fn func(AuthState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// State returns the current auth state, derived purely from the
// bootstrap flag and credential presence.
func (c *Controller) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() AuthState {
	if !c.bootstrapped {
		return StateLoading
	}
	if c.hasToken {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Bootstrap reads the stored credential once at process start and
// resolves StateLoading. Calling it again is a no-op.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.bootstrapped {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	_, present, err := c.store.Get(ctx, store.TokenKey)
	if err != nil {
		return fmt.Errorf("reading stored credential: %w", err)
	}

	c.transition(func() {
		c.bootstrapped = true
		c.hasToken = present
	})
	return nil
}

// SignIn durably stores the credential, then transitions to
// StateAuthenticated. On a store failure the state is left unchanged.
func (c *Controller) SignIn(ctx context.Context, token string) error {
	if err := c.store.Set(ctx, store.TokenKey, token); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	c.transition(func() {
		c.bootstrapped = true
		c.hasToken = true
	})
	return nil
}

// SignOut removes the stored credential, then transitions to
// StateUnauthenticated. Safe to call when already signed out.
func (c *Controller) SignOut(ctx context.Context) error {
	if err := c.store.Remove(ctx, store.TokenKey); err != nil {
		return fmt.Errorf("removing credential: %w", err)
	}

	c.transition(func() {
		c.bootstrapped = true
		c.hasToken = false
	})
	return nil
}

// transition applies a state mutation under the lock and notifies the
// change listener outside of it.
func (c *Controller) transition(apply func()) {
	c.mu.Lock()
	apply()
	next := c.state()
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(next)
	}
}

// hook.go implements the process-wide session invalidation hook.
// The API gateway's 401 handler lives deep in request plumbing with no
// structural path to the active controller; it reaches session state
// through this single-slot registration instead.
package session

import (
	"context"
	"sync"

	"github.com/alprnalcri/dyslexia-cli/internal/store"
)

var (
	hookMu sync.Mutex
	active *Controller
)

// Activate installs c as the controller behind the invalidation hook.
// Call when a controller becomes the process's active session owner.
func Activate(c *Controller) {
	hookMu.Lock()
	defer hookMu.Unlock()
	active = c
}

// Deactivate clears the hook slot if c is still the installed
// controller. Call on teardown.
func Deactivate(c *Controller) {
	hookMu.Lock()
	defer hookMu.Unlock()
	if active == c {
		active = nil
	}
}

// Invalidate forces the current session to sign out. When no controller
// is registered the credential in st is cleared directly, so a stale
// credential can never outlive an invalidation even with nobody
// listening.
func Invalidate(ctx context.Context, st *store.Store) error {
	hookMu.Lock()
	c := active
	hookMu.Unlock()

	if c != nil {
		return c.SignOut(ctx)
	}
	if st != nil {
		return st.Remove(ctx, store.TokenKey)
	}
	return nil
}

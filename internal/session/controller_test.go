package session

import (
	"context"
	"testing"

	"github.com/alprnalcri/dyslexia-cli/internal/testutil"
)

func TestBootstrapWithStoredCredential(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, "userToken", "tok"); err != nil {
		t.Fatalf("seeding token: %v", err)
	}

	c := NewController(st)
	if c.State() != StateLoading {
		t.Errorf("state before bootstrap: got %v, want StateLoading", c.State())
	}

	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if c.State() != StateAuthenticated {
		t.Errorf("state after bootstrap: got %v, want StateAuthenticated", c.State())
	}
}

func TestBootstrapWithoutCredential(t *testing.T) {
	st := testutil.OpenStore(t)

	c := NewController(st)
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state after bootstrap: got %v, want StateUnauthenticated", c.State())
	}
}

func TestBootstrapRunsOnce(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// A credential stored after bootstrap is not re-read.
	if err := st.Set(ctx, "userToken", "late"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("second Bootstrap failed: %v", err)
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state after second bootstrap: got %v, want StateUnauthenticated", c.State())
	}
}

func TestSignInSignOutRoundTrip(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := c.SignIn(ctx, "tok-abc"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if c.State() != StateAuthenticated {
		t.Errorf("state after SignIn: got %v, want StateAuthenticated", c.State())
	}
	value, present, err := st.Get(ctx, "userToken")
	if err != nil || !present || value != "tok-abc" {
		t.Fatalf("stored credential: got (%q, %v, %v), want tok-abc", value, present, err)
	}

	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state after SignOut: got %v, want StateUnauthenticated", c.State())
	}
	if _, present, _ := st.Get(ctx, "userToken"); present {
		t.Error("credential still present after SignOut")
	}
}

func TestSignOutIdempotent(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("SignOut while signed out failed: %v", err)
	}
	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("second SignOut failed: %v", err)
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state: got %v, want StateUnauthenticated", c.State())
	}
}

func TestSignInFailureLeavesStateUnchanged(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// Closing the store makes the durable write fail.
	_ = st.Close()

	if err := c.SignIn(ctx, "tok"); err == nil {
		t.Fatal("expected SignIn to fail on a closed store")
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state after failed SignIn: got %v, want StateUnauthenticated", c.State())
	}
}

func TestOnChangeNotified(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	var seen []AuthState
	c.OnChange(func(s AuthState) { seen = append(seen, s) })

	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if err := c.SignIn(ctx, "tok"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	want := []AuthState{StateUnauthenticated, StateAuthenticated, StateUnauthenticated}
	if len(seen) != len(want) {
		t.Fatalf("transitions seen: got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d: got %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestInvalidateWithActiveController(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	c := NewController(st)
	if err := c.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if err := c.SignIn(ctx, "tok"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	Activate(c)
	defer Deactivate(c)

	if err := Invalidate(ctx, st); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state after Invalidate: got %v, want StateUnauthenticated", c.State())
	}
	if _, present, _ := st.Get(ctx, "userToken"); present {
		t.Error("credential still present after Invalidate")
	}
}

func TestInvalidateWithoutControllerClearsStore(t *testing.T) {
	st := testutil.OpenStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, "userToken", "stale"); err != nil {
		t.Fatalf("seeding token: %v", err)
	}

	// Nothing registered: the credential must still be cleared.
	if err := Invalidate(ctx, st); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, present, _ := st.Get(ctx, "userToken"); present {
		t.Error("credential still present after unregistered Invalidate")
	}
}

func TestDeactivateOnlyClearsOwnSlot(t *testing.T) {
	st := testutil.OpenStore(t)

	c1 := NewController(st)
	c2 := NewController(st)

	Activate(c1)
	Activate(c2)
	defer Deactivate(c2)

	// c1 is no longer the active controller; its Deactivate is a no-op.
	Deactivate(c1)

	ctx := context.Background()
	if err := c2.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if err := Invalidate(ctx, st); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if c2.State() != StateUnauthenticated {
		t.Errorf("active controller not invalidated: got %v", c2.State())
	}
}

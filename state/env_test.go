package state_test

import (
	"context"
	"testing"

	"fontset/state"
)

func TestEnvRoundTrip(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	if env == nil {
		t.Fatal("expected env in context")
	}
	if env.Uptime() < 0 {
		t.Error("uptime went backwards")
	}
}

func TestEnvMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for context without env")
		}
	}()
	state.EnvFromContext(context.Background())
}

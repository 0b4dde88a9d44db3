package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"finboard/internal/config"
	"finboard/internal/testutil"
)

func instantProvider() *SimulatedProvider {
	p := NewSimulatedProvider(&config.Config{})
	p.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return p
}

func TestSimulatedProvider_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts_any_email_with_long_password", func(t *testing.T) {
		user, err := instantProvider().Login(ctx, "jane@example.com", "secret")
		testutil.AssertNoError(t, err)
		if user.Email != "jane@example.com" || user.ID != "1" || user.Role != "Admin" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("rejects_short_password", func(t *testing.T) {
		_, err := instantProvider().Login(ctx, "jane@example.com", "12345")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("rejects_empty_email", func(t *testing.T) {
		_, err := instantProvider().Login(ctx, "", "secret")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("checks_configured_hash", func(t *testing.T) {
		p := instantProvider()
		p.PasswordHash = testutil.HashTestPassword(t, "correct-horse")

		_, err := p.Login(ctx, "jane@example.com", "wrong-horse")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

		_, err = p.Login(ctx, "jane@example.com", "correct-horse")
		testutil.AssertNoError(t, err)
	})

	t.Run("waits_for_login_latency", func(t *testing.T) {
		p := NewSimulatedProvider(&config.Config{LoginLatency: time.Second, GoogleLatency: 800 * time.Millisecond})
		var waited []time.Duration
		p.Sleep = func(_ context.Context, d time.Duration) error {
			waited = append(waited, d)
			return nil
		}
		_, _ = p.Login(ctx, "jane@example.com", "secret")
		_, _ = p.LoginWithGoogle(ctx)
		if len(waited) != 2 || waited[0] != time.Second || waited[1] != 800*time.Millisecond {
			t.Errorf("unexpected waits %v", waited)
		}
	})

	t.Run("honours_cancellation", func(t *testing.T) {
		p := NewSimulatedProvider(&config.Config{LoginLatency: time.Hour})
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := p.Login(cctx, "jane@example.com", "secret")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSimulatedProvider_LoginWithGoogle(t *testing.T) {
	user, err := instantProvider().LoginWithGoogle(context.Background())
	testutil.AssertNoError(t, err)
	if user.Email != "john.doe@gmail.com" || user.Name != "John Doe" {
		t.Errorf("unexpected user %+v", user)
	}
}

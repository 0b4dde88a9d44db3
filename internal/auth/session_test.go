package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"finboard/internal/models"
	"finboard/internal/storage"
	"finboard/internal/testutil"
)

func newTestSession(t *testing.T, p Provider) (*Session, *storage.GormStore) {
	t.Helper()
	kv := storage.NewGormStore(testutil.SetupTestDB(t))
	return NewSession(p, kv), kv
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"missing_email", "", "secret", "Email is required"},
		{"blank_email", "   ", "secret", "Email is required"},
		{"missing_password", "a@b.c", "", "Password is required"},
		{"short_password", "a@b.c", "12345", "Password must be at least 6 characters"},
		{"valid", "a@b.c", "123456", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCredentials(tc.email, tc.password)
			if tc.want == "" {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertAppError(t, err, "INVALID_INPUT")
			if err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("persists_user", func(t *testing.T) {
		s, kv := newTestSession(t, instantProvider())

		user, err := s.Login(ctx, "jane@example.com", "secret")
		testutil.AssertNoError(t, err)

		current, ok := s.CurrentUser()
		if !ok || current != user {
			t.Fatalf("expected current user %+v, got %+v", user, current)
		}

		raw, ok, err := kv.Get(ctx, StorageKey)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected user to be persisted")
		}
		var stored models.User
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			t.Fatalf("stored user is not JSON: %v", err)
		}
		if stored.Email != "jane@example.com" {
			t.Errorf("expected stored email, got %q", stored.Email)
		}
	})

	t.Run("form_errors_skip_provider", func(t *testing.T) {
		s, _ := newTestSession(t, instantProvider())
		_, err := s.Login(ctx, "", "secret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no user")
		}
	})

	t.Run("rejected_credentials_keep_state", func(t *testing.T) {
		p := instantProvider()
		p.PasswordHash = testutil.HashTestPassword(t, "correct-horse")
		s, _ := newTestSession(t, p)

		_, err := s.Login(ctx, "jane@example.com", "wrong-horse")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		if s.IsLoading() {
			t.Error("loading flag should be reset")
		}
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no user")
		}
	})

	t.Run("single_login_in_flight", func(t *testing.T) {
		p := instantProvider()
		started := make(chan struct{})
		release := make(chan struct{})
		p.Sleep = func(ctx context.Context, _ time.Duration) error {
			close(started)
			<-release
			return nil
		}
		s, _ := newTestSession(t, p)

		done := make(chan error, 1)
		go func() {
			_, err := s.Login(ctx, "jane@example.com", "secret")
			done <- err
		}()
		<-started

		if !s.IsLoading() {
			t.Error("expected loading while sign-in is in flight")
		}
		_, err := s.LoginWithGoogle(ctx)
		testutil.AssertAppError(t, err, "LOGIN_IN_PROGRESS")

		close(release)
		testutil.AssertNoError(t, <-done)
		if s.IsLoading() {
			t.Error("expected loading to be reset")
		}
	})

	t.Run("cancelled_login", func(t *testing.T) {
		p := instantProvider()
		s, _ := newTestSession(t, p)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.Login(cctx, "jane@example.com", "secret")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no user after a cancelled sign-in")
		}
	})
}

func TestSession_LogoutAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("restore_after_restart", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		kv := storage.NewGormStore(db)
		first := NewSession(instantProvider(), kv)
		_, err := first.LoginWithGoogle(ctx)
		testutil.AssertNoError(t, err)

		second := NewSession(instantProvider(), kv)
		testutil.AssertNoError(t, second.Restore(ctx))
		user, ok := second.CurrentUser()
		if !ok || user.Email != "john.doe@gmail.com" {
			t.Errorf("expected restored google user, got %+v", user)
		}
	})

	t.Run("logout_erases_storage", func(t *testing.T) {
		s, kv := newTestSession(t, instantProvider())
		_, err := s.Login(ctx, "jane@example.com", "secret")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, s.Logout(ctx))
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no user after logout")
		}
		_, ok, err := kv.Get(ctx, StorageKey)
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected storage key to be removed")
		}
		if st := s.State(); st.User != nil || st.IsLoading {
			t.Errorf("unexpected state %+v", st)
		}
	})

	t.Run("restore_without_entry", func(t *testing.T) {
		s, _ := newTestSession(t, instantProvider())
		testutil.AssertNoError(t, s.Restore(ctx))
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no user")
		}
	})

	t.Run("restore_discards_corrupt_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateTestStorageEntry(t, db, StorageKey, "{not json")
		kv := storage.NewGormStore(db)
		s := NewSession(instantProvider(), kv)

		testutil.AssertNoError(t, s.Restore(ctx))
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected corrupt session to be ignored")
		}
		_, ok, _ := kv.Get(ctx, StorageKey)
		if ok {
			t.Error("expected corrupt entry to be deleted")
		}
	})
}

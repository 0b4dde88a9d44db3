package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/storage"
)

// StorageKey is where the signed-in user is persisted.
const StorageKey = "finboard.auth.user"

// State is a snapshot of the session.
type State struct {
	User      *models.User `json:"user"`
	IsLoading bool         `json:"isLoading"`
}

// Session tracks the signed-in user. At most one sign-in may be in flight.
type Session struct {
	mu       sync.Mutex
	provider Provider
	store    storage.KeyValue
	user     *models.User
	loading  bool
	log      *zap.SugaredLogger
}

// NewSession creates a signed-out session.
func NewSession(provider Provider, store storage.KeyValue) *Session {
	return &Session{
		provider: provider,
		store:    store,
		log:      logger.Named("auth"),
	}
}

// ValidateCredentials checks the sign-in form before it is submitted.
func ValidateCredentials(email, password string) error {
	switch {
	case strings.TrimSpace(email) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Email is required")
	case password == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Password is required")
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at least 6 characters")
	}
	return nil
}

// Restore loads a previously persisted user. A corrupt entry is discarded.
func (s *Session) Restore(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.user = nil
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.log.Warnw("Discarding unreadable session", "error", err)
		s.user = nil
		return s.store.Delete(ctx, StorageKey)
	}
	s.user = &user
	s.log.Infow("Session restored", "email", user.Email)
	return nil
}

// Login validates the form, then signs in with the provider.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return models.User{}, err
	}
	return s.signIn(ctx, func(ctx context.Context) (models.User, error) {
		return s.provider.Login(ctx, email, password)
	})
}

// LoginWithGoogle signs in the Google account.
func (s *Session) LoginWithGoogle(ctx context.Context) (models.User, error) {
	return s.signIn(ctx, s.provider.LoginWithGoogle)
}

func (s *Session) signIn(ctx context.Context, fn func(context.Context) (models.User, error)) (models.User, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return models.User{}, apperrors.ErrLoginInProgress
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	user, err := fn(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return models.User{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return models.User{}, err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Set(ctx, StorageKey, string(raw)); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.log.Infow("User signed in", "email", user.Email)
	return user, nil
}

// Logout forgets the signed-in user.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := s.store.Delete(ctx, StorageKey); err != nil {
		return err
	}
	s.log.Info("User signed out")
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsLoading reports whether a sign-in is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Package auth implements the simulated sign-in flow: a credential provider
// with artificial latency and a session that remembers the signed-in user
// across restarts.
package auth

import (
	"context"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"finboard/internal/config"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// MinPasswordLength is the shortest password a provider accepts.
const MinPasswordLength = 6

// Provider authenticates users.
type Provider interface {
	// Login returns the signed-in user, or ErrInvalidCredentials when the
	// credentials are rejected.
	Login(ctx context.Context, email, password string) (models.User, error)
	LoginWithGoogle(ctx context.Context) (models.User, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SimulatedProvider accepts any non-empty email with a password of at least
// MinPasswordLength characters after an artificial delay. When PasswordHash
// is set the password must also match that bcrypt hash.
type SimulatedProvider struct {
	LoginLatency  time.Duration
	GoogleLatency time.Duration
	PasswordHash  string
	DemoUser      models.User
	GoogleEmail   string
	Sleep         SleepFunc
}

// DemoUser is the identity every successful sign-in resolves to.
func DemoUser() models.User {
	return models.User{ID: "1", Name: "John Doe", Role: "Admin"}
}

// NewSimulatedProvider creates a provider configured from cfg.
func NewSimulatedProvider(cfg *config.Config) *SimulatedProvider {
	return &SimulatedProvider{
		LoginLatency:  cfg.LoginLatency,
		GoogleLatency: cfg.GoogleLatency,
		PasswordHash:  cfg.DemoPasswordHash,
		DemoUser:      DemoUser(),
		GoogleEmail:   "john.doe@gmail.com",
		Sleep:         sleep,
	}
}

// Login checks the credentials after LoginLatency.
func (p *SimulatedProvider) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := p.wait(ctx, p.LoginLatency); err != nil {
		return models.User{}, err
	}
	if email == "" || utf8.RuneCountInString(password) < MinPasswordLength {
		return models.User{}, apperrors.ErrInvalidCredentials
	}
	if p.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
			return models.User{}, apperrors.ErrInvalidCredentials
		}
	}
	user := p.DemoUser
	user.Email = email
	return user, nil
}

// LoginWithGoogle signs in the fixed Google account after GoogleLatency.
func (p *SimulatedProvider) LoginWithGoogle(ctx context.Context) (models.User, error) {
	if err := p.wait(ctx, p.GoogleLatency); err != nil {
		return models.User{}, err
	}
	user := p.DemoUser
	user.Email = p.GoogleEmail
	return user, nil
}

func (p *SimulatedProvider) wait(ctx context.Context, d time.Duration) error {
	s := p.Sleep
	if s == nil {
		s = sleep
	}
	return s(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

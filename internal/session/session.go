package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/nav"
	"lagerstyring-client/internal/store"
)

// ErrLoginRejected is returned when the backend refuses the credentials.
var ErrLoginRejected = errors.New("invalid login credentials")

// Session is the process-wide authentication state. Token presence is the
// only validity check performed client-side; an expired token surfaces on
// the first authenticated call.
type Session struct {
	Token string
	Email string
}

// Manager owns the session lifecycle: created on successful sign-in, read on
// every screen activation, destroyed on sign-out. It is the only writer of
// the authToken and userEmail store keys.
type Manager struct {
	store store.Store
	inv   *api.Inventory
	nav   nav.Navigator
	log   *zap.Logger
}

// NewManager creates a session manager.
func NewManager(s store.Store, inv *api.Inventory, navigator nav.Navigator, log *zap.Logger) *Manager {
	return &Manager{store: s, inv: inv, nav: navigator, log: log}
}

// Current returns the stored session. A store read failure is treated the
// same as no session: the caller must re-authenticate.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	token, found, err := m.store.Get(ctx, store.KeyAuthToken)
	if err != nil {
		m.log.Warn("session read failed, treating as signed out", zap.Error(err))
		return Session{}, false
	}
	if !found || token == "" {
		return Session{}, false
	}

	email, _, err := m.store.Get(ctx, store.KeyUserEmail)
	if err != nil {
		m.log.Warn("email read failed, treating as signed out", zap.Error(err))
		return Session{}, false
	}
	return Session{Token: token, Email: email}, true
}

// EnsureSession gates an authenticated flow. Without a valid session it
// persists currentPath as the post-login redirect target and navigates to
// the login screen; the caller must stop. It runs on every screen
// activation, not just the first.
func (m *Manager) EnsureSession(ctx context.Context, currentPath string) bool {
	if _, ok := m.Current(ctx); ok {
		return true
	}

	if err := m.store.Set(ctx, store.KeyRedirectAfterLogin, currentPath); err != nil {
		m.log.Warn("failed to persist redirect target", zap.Error(err))
	}
	m.nav.Navigate(nav.ScreenLogin, map[string]string{nav.ParamRedirectPath: currentPath})
	return false
}

// SignIn exchanges credentials for a token and persists the session. It
// returns the stored redirect target, or the home screen when none is set.
func (m *Manager) SignIn(ctx context.Context, email, password string) (string, error) {
	resp, err := m.inv.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	if resp.StatusCode != 200 || resp.Token == "" {
		return "", ErrLoginRejected
	}

	if err := m.store.Set(ctx, store.KeyAuthToken, resp.Token); err != nil {
		return "", fmt.Errorf("failed to persist session token: %w", err)
	}
	if err := m.store.Set(ctx, store.KeyUserEmail, email); err != nil {
		return "", fmt.Errorf("failed to persist user email: %w", err)
	}

	redirect, found, err := m.store.Get(ctx, store.KeyRedirectAfterLogin)
	if err != nil || !found || redirect == "" {
		redirect = nav.ScreenHome
	} else {
		// One-shot target.
		if err := m.store.Delete(ctx, store.KeyRedirectAfterLogin); err != nil {
			m.log.Warn("failed to clear redirect target", zap.Error(err))
		}
	}

	m.log.Info("signed in", zap.String("email", email))
	return redirect, nil
}

// SignOut destroys the session.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Delete(ctx, store.KeyAuthToken); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, store.KeyUserEmail); err != nil {
		return err
	}
	m.log.Info("signed out")
	return nil
}

// UserID resolves the signed-in email to the backend user ID used in
// activity payloads.
func (m *Manager) UserID(ctx context.Context) (int64, error) {
	sess, ok := m.Current(ctx)
	if !ok {
		return 0, errors.New("no active session")
	}
	user, err := m.inv.GetUserByEmail(ctx, sess.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user by email: %w", err)
	}
	return user.ID, nil
}

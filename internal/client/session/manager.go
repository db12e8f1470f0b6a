// Package session holds the authenticated identity for the running client and
// keeps it in sync with a durable local copy, so a sign-in survives restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/dmskit/dmscli/internal/common"
	"github.com/dmskit/dmscli/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Persisted entries. The identity and the bearer token are stored as two
// separate rows, mirroring the two values the browser client kept.
const (
	keyUser  = "session.user"
	keyToken = "session.token"
)

// Session is the current authentication state. A zero Session means signed out.
type Session struct {
	User  *models.User
	Token string
}

// SignedIn reports whether the session carries an identity.
func (s Session) SignedIn() bool { return s.User != nil && s.Token != "" }

// Manager owns the process-wide Session. The in-memory value and the
// persisted copy are mutated together: SignIn and SignOut are the only
// writers, and both update memory and storage under one lock.
type Manager struct {
	mu   sync.Mutex
	repo Repository
	log  logging.Logger
	cur  Session
}

func NewManager(repo Repository, log logging.Logger) *Manager {
	return &Manager{repo: repo, log: log}
}

// Load initializes the in-memory session from the persisted copy. A missing
// copy yields a signed-out session. A malformed or already-expired copy is
// treated the same as a missing one: it is logged, cleared from storage, and
// never fatal.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userRaw, err := m.repo.Get(ctx, keyUser)
	if err != nil {
		return err
	}
	tokenRaw, err := m.repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}

	if userRaw == nil && tokenRaw == nil {
		m.cur = Session{}
		return nil
	}

	sess, err := parseSession(userRaw, tokenRaw)
	if err != nil {
		m.log.Warn(ctx, "discarding persisted session", "error", err)
		return m.clearLocked(ctx)
	}

	m.cur = sess
	return nil
}

// parseSession rebuilds a Session from the two persisted rows. A row missing
// its counterpart, an identity that does not parse, or a token already past
// its exp claim all invalidate the whole copy.
func parseSession(userRaw, tokenRaw []byte) (Session, error) {
	if userRaw == nil || tokenRaw == nil {
		return Session{}, fmt.Errorf("incomplete copy: %w", common.ErrMalformedSession)
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return Session{}, fmt.Errorf("%v: %w", err, common.ErrMalformedSession)
	}
	if err := user.Validate(); err != nil {
		return Session{}, fmt.Errorf("%v: %w", err, common.ErrMalformedSession)
	}

	token := string(tokenRaw)
	if tokenExpired(token) {
		return Session{}, fmt.Errorf("token for %s: %w", user.Email, common.ErrTokenExpired)
	}

	return Session{User: &user, Token: token}, nil
}

// SignIn replaces the session with the given identity and token and persists
// both. The new identity is observable through Current as soon as SignIn
// returns.
func (m *Manager) SignIn(ctx context.Context, user models.User, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.repo.SetAll(ctx, map[string][]byte{
		keyUser:  raw,
		keyToken: []byte(token),
	}); err != nil {
		return err
	}

	m.cur = Session{User: &user, Token: token}
	return nil
}

// SignOut clears the session and removes the persisted copy.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

func (m *Manager) clearLocked(ctx context.Context) error {
	m.cur = Session{}
	return m.repo.DeleteAll(ctx, keyUser, keyToken)
}

// Current returns the in-memory session value.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Token returns the bearer token, or the empty string when signed out. It
// satisfies the gateway's TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Token
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the server's job. Opaque tokens and tokens
// without an exp claim are passed through for the server to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Package auth is the session and identity provider: a thin wrapper over
// Google's OAuth flow that yields the bearer credential the sheet layer
// authenticates with, plus the signed-in user's basic profile.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/turtlefin/turtle-finance/internal/sheetsync"
)

// ErrNoCredential is returned when an authenticated client is requested
// before sign-in.
var ErrNoCredential = errors.New("auth: no stored credential")

// Profile is the basic identity of the signed-in user.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Manager holds the OAuth configuration and the persisted token. It
// implements the synchronizer's Session interface.
type Manager struct {
	cfg       *oauth2.Config
	tokenPath string

	mu    sync.RWMutex
	token *oauth2.Token
}

var _ sheetsync.Session = (*Manager)(nil)

// NewManager builds a manager from an OAuth client-secret JSON blob. A token
// already present at tokenPath is loaded so the session survives restarts.
func NewManager(clientSecretJSON []byte, tokenPath string) (*Manager, error) {
	cfg, err := google.ConfigFromJSON(clientSecretJSON,
		sheets.SpreadsheetsScope,
		oauth2api.UserinfoProfileScope,
		oauth2api.UserinfoEmailScope,
	)
	if err != nil {
		return nil, fmt.Errorf("auth: oauth config: %w", err)
	}

	m := &Manager{cfg: cfg, tokenPath: tokenPath}
	m.loadToken()
	return m, nil
}

func (m *Manager) loadToken() {
	raw, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return
	}
	m.token = &tok
}

// SignedIn reports whether a credential is stored.
func (m *Manager) SignedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != nil
}

// SignOut invalidates the local credential. The remote token is not revoked.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	_ = os.Remove(m.tokenPath)
}

// AuthURL returns the interactive consent URL. Offline access is requested
// so the stored token can refresh itself.
func (m *Manager) AuthURL(state string) string {
	return m.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and persists it.
func (m *Manager) Exchange(ctx context.Context, code string) error {
	tok, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("auth: exchange code: %w", err)
	}

	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("auth: marshal token: %w", err)
	}
	if err := os.WriteFile(m.tokenPath, raw, 0o600); err != nil {
		return fmt.Errorf("auth: persist token: %w", err)
	}

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()
	return nil
}

// Client returns an HTTP client that authenticates with the stored
// credential, refreshing it as needed.
func (m *Manager) Client(ctx context.Context) (*http.Client, error) {
	m.mu.RLock()
	tok := m.token
	m.mu.RUnlock()
	if tok == nil {
		return nil, ErrNoCredential
	}
	return m.cfg.Client(ctx, tok), nil
}

// Profile fetches the signed-in user's name, email and picture.
func (m *Manager) Profile(ctx context.Context) (Profile, error) {
	client, err := m.Client(ctx)
	if err != nil {
		return Profile{}, err
	}

	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return Profile{}, fmt.Errorf("auth: userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return Profile{}, fmt.Errorf("auth: fetch userinfo: %w", err)
	}

	return Profile{Name: info.Name, Email: info.Email, Picture: info.Picture}, nil
}

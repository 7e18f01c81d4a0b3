package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	"gopkg.in/ini.v1"
)

// tokenKey is the credential line the credentials file must carry:
//
//	github.token=<token>
const tokenKey = "github.token"

// tokenPrefixes are the recognized GitHub token formats. A credential
// without one of these is rejected before any network access.
var tokenPrefixes = []string{"ghp_", "gho_", "ghs_", "github_pat_"}

// Manager handles token discovery and validation.
type Manager struct{}

// NewManager creates an authentication manager.
func NewManager() *Manager {
	return &Manager{}
}

// Token retrieves the GitHub token: the GITHUB_TOKEN environment
// variable wins, then the credentials file. The token must carry a
// recognized prefix either way.
func (m *Manager) Token(credentialsPath string) (string, error) {
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		return token, validateTokenFormat(token)
	}

	token, err := readCredentialsFile(credentialsPath)
	if err != nil {
		return "", err
	}
	return token, validateTokenFormat(token)
}

// readCredentialsFile parses the credentials file and extracts the
// github.token entry.
func readCredentialsFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN or create %s with a %s= line", path, tokenKey)
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	token := strings.TrimSpace(cfg.Section("").Key(tokenKey).String())
	if token == "" {
		return "", fmt.Errorf("credentials file %s has no %s entry", path, tokenKey)
	}
	return token, nil
}

func validateTokenFormat(token string) error {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return nil
		}
	}
	return fmt.Errorf("GitHub token has no recognized prefix (expected one of %s)", strings.Join(tokenPrefixes, ", "))
}

// TokenInfo describes a validated token.
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// Validate checks the token against the live API and reports the
// authenticated user and granted scopes.
func (m *Manager) Validate(ctx context.Context, token string) (*TokenInfo, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", err)
	}

	var scopes []string
	if header := resp.Header.Get("X-OAuth-Scopes"); header != "" {
		scopes = strings.Split(strings.ReplaceAll(header, " ", ""), ",")
	}

	info := &TokenInfo{User: user.GetLogin(), Scopes: scopes}
	if err := requireScope(scopes, "repo"); err != nil {
		return info, err
	}
	return info, nil
}

func requireScope(scopes []string, required string) error {
	for _, scope := range scopes {
		if scope == required {
			return nil
		}
	}
	return fmt.Errorf("GitHub token missing required scope %q (granted: %s)", required, strings.Join(scopes, ", "))
}

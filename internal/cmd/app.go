package cmd

import (
	"fmt"
	"log/slog"

	"reporules/pkg/config"
	"reporules/pkg/github"
)

// app bundles the collaborators every networked command needs.
type app struct {
	cfg      *config.Config
	client   *github.Client
	resolver *github.Resolver
}

// newApp loads configuration and credentials and wires the client and
// resolver. Invalid configuration or a missing/bad token fails here,
// before any network access.
func newApp() (*app, error) {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFromPath(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return nil, err
	}
	token, err := github.NewManager().Token(credPath)
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(token, cfg.GitHub.APIURL, slog.Default())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		client:   client,
		resolver: github.NewResolver(client, cfg.GitHub.Organization, cfg.GitHub.Teams),
	}, nil
}

// reconciler builds the rule reconciler on top of the app's client.
func (a *app) reconciler() *github.Reconciler {
	sanitizer := github.NewSanitizer(a.resolver)
	return github.NewReconciler(a.client, sanitizer, a.cfg.GitHub.Organization, slog.Default())
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reporules/pkg/config"
	"reporules/pkg/github"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication helpers",
}

var authVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate the configured GitHub token",
	Args:  cobra.NoArgs,
	RunE:  runAuthVerify,
}

func init() {
	authCmd.AddCommand(authVerifyCmd)
}

func runAuthVerify(_ *cobra.Command, _ []string) error {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFromPath(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return err
	}

	manager := github.NewManager()
	token, err := manager.Token(credPath)
	if err != nil {
		return err
	}

	info, err := manager.Validate(context.Background(), token)
	if err != nil {
		return err
	}

	fmt.Printf("authenticated as %s (scopes: %s)\n", info.User, strings.Join(info.Scopes, ", "))
	return nil
}

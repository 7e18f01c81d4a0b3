package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reporules/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize reporules configuration",
	Long:  "Create a starter configuration file for reporules",
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Configuration file already exists at: %s\n", configPath)
		fmt.Print("Do you want to overwrite it? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Configuration initialization cancelled.")
			return nil
		}
	}

	starter := &config.Config{
		GitHub: config.GitHubConfig{
			Organization: "your-org",
			Teams:        []string{"platform", "backend"},
			Enforcement:  "active",
		},
		Output: config.OutputConfig{Indent: 2},
	}

	if err := starter.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("Edit it to set your organization, team subset, and credentials path.")
	return nil
}

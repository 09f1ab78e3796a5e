package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/config"
	"github.com/example/autofix/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the autofix database and configuration",
		Long:  `Initialize the autofix database at ~/.autofix/autofix.db and write .autofix/config.json in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			if apiURL == "" {
				return fmt.Errorf("--api-url is required")
			}

			dbPath, err := db.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing autofix database at %s\n", dbPath)

			database, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			defer database.Close()

			fmt.Println("✓ Database initialized successfully")

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}
			if err := config.SaveConfig(cwd, config.DefaultConfig(apiURL)); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Println("✓ Config file created at .autofix/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  autofix preview <project-id> <violation-id>...")
			fmt.Println("  autofix history <project-id>")

			return nil
		},
	}

	cmd.Flags().String("api-url", "", "Base URL of the design service API")
	return cmd
}

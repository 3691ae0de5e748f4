package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskpull-cli/internal/adapters/driven/config/file"
	ghapi "github.com/custodia-labs/taskpull-cli/internal/connectors/github"
	"github.com/custodia-labs/taskpull-cli/internal/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and verify API access",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	log := logger.New(verbose)

	cfg, err := file.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cmd.Printf("Configuration OK: %s\n", cfg.KeyringService())

	client, err := ghapi.NewClient(cfg.Host, cfg.Credentials(), log)
	if err != nil {
		return err
	}

	viewer, err := client.Viewer(ctx)
	if err != nil {
		return fmt.Errorf("authentication check failed: %w", err)
	}
	cmd.Printf("Authenticated as %s\n", viewer.Login)
	return nil
}

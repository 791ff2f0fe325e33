package cmd

import (
	"context"
	"fmt"
	"os"

	"autolabel/internal/app"
	"autolabel/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type contextKey string

const appKey contextKey = "app"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "autolabel",
	Short: "Social listening auto-labeling service",
	Long: `Autolabel assigns topical labels to social-media text batches for a
business category, combining deterministic rules, a generative
classifier, and embedding search over a canonical label vocabulary.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

// GetAppFromContext retrieves the initialized application from the
// command context set up by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application not initialized in command context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

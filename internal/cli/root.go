// Package cli implements the packform command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ecoyoung/packform/internal/bootstrap"
	httpDelivery "github.com/ecoyoung/packform/internal/delivery/http"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configFile string
	debug      bool
}

// Execute runs the root command with the process arguments
func Execute() error {
	return ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the root command with args in place of the process arguments
func ExecuteArgs(args []string) error {
	// Load .env early so environment variables are available to every command
	_ = godotenv.Load()

	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "packform",
		Short: "Standardize and infer product pack forms",
		Long: `packform normalizes the pack form (dosage form) column of product tables
and fills missing values from the product text.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(
		&opts.configFile,
		"config",
		"",
		"config file (default is ./config.yaml, ./config/config.yaml, or /etc/packform/config.yaml)",
	)
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging of every detection")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "packform version %s\n", httpDelivery.Version)
		},
	})

	root.AddCommand(newLabelCommand(opts))
	root.AddCommand(newStandardizeCommand(opts))
	root.AddCommand(newClassifyCommand(opts))
	root.AddCommand(newCategoriesCommand(opts))
	root.AddCommand(newTaxonomyCommand(opts))
	root.AddCommand(newServeCommand(opts))

	return root
}

// newApp loads configuration and assembles the engine. Metrics are only
// kept for long-running commands.
func (o *rootOptions) newApp(keepMetrics bool) (*bootstrap.App, error) {
	cfg, err := bootstrap.LoadConfig(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.debug {
		cfg.Labeler.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	if !keepMetrics {
		cfg.Metrics.Enabled = false
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// closeApp stops background work and flushes the logger.
func closeApp(app *bootstrap.App) {
	app.Close()
	_ = app.Logger.Sync()
}

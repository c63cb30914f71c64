package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecoyoung/packform/internal/taxonomy"
)

// newStandardizeCommand creates the standardize command
func newStandardizeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "standardize LABEL...",
		Short: "Map raw pack form labels to canonical categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(false)
			if err != nil {
				return err
			}
			defer closeApp(app)

			results := make([]standardizeResult, len(args))
			for i, raw := range args {
				results[i] = standardizeResult{Input: raw, Label: app.Service.Standardize(raw)}
			}
			renderStandardize(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

// newClassifyCommand creates the classify command
func newClassifyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify TEXT...",
		Short: "Infer the pack form of product texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(false)
			if err != nil {
				return err
			}
			defer closeApp(app)

			results := make([]classifyResult, len(args))
			for i, text := range args {
				results[i] = classifyResult{Text: text, Inference: app.Service.Infer(cmd.Context(), text)}
			}
			renderClassify(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

// newCategoriesCommand creates the categories command
func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List canonical categories with their rule and alias counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(false)
			if err != nil {
				return err
			}
			defer closeApp(app)

			renderCategories(cmd.OutOrStdout(), app.Taxonomy)
			return nil
		},
	}
}

// newTaxonomyCommand creates the taxonomy command
func newTaxonomyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the effective taxonomy as YAML",
		Long: `Prints the pattern, Others and alias tables in effect, including any
extensions from labeler.taxonomy_file. The output is a valid extension file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(false)
			if err != nil {
				return err
			}
			defer closeApp(app)

			return taxonomy.Export(cmd.OutOrStdout(), app.Taxonomy)
		},
	}
}

// newServeCommand creates the serve command
func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(true)
			if err != nil {
				return err
			}
			defer closeApp(app)

			return app.Serve(cmd.Context())
		},
	}
}

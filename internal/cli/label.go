package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/infrastructure/spreadsheet"
)

// newLabelCommand creates the label command
func newLabelCommand(opts *rootOptions) *cobra.Command {
	var (
		output     string
		sheet      string
		labelField string
		textField  string
	)

	cmd := &cobra.Command{
		Use:   "label INPUT.xlsx",
		Short: "Standardize and fill the pack form column of a workbook",
		Long: `Reads the workbook, rewrites known pack form spellings to their canonical
names, infers missing pack forms from the product text and writes the result
with provenance columns and a Report sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(false)
			if err != nil {
				return err
			}
			defer closeApp(app)

			input := args[0]
			if output == "" {
				output = labeledPath(input)
			}
			if sheet == "" {
				sheet = app.Config.Upload.Sheet
			}

			ds, sheetName, err := spreadsheet.ReadFile(input, sheet)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}

			labeled, batch, err := app.Service.LabelDataset(cmd.Context(), ds, domain.Fields{
				Label: labelField,
				Text:  textField,
			})
			if err != nil {
				return err
			}

			report := app.Service.Report(batch)
			if err := spreadsheet.WriteFile(output, sheetName, labeled, &report); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			out := cmd.OutOrStdout()
			renderReport(out, report)
			fmt.Fprintf(out, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook (default is INPUT_labeled.xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (default is the first sheet)")
	cmd.Flags().StringVar(&labelField, "label-field", "", "pack form column (default from config)")
	cmd.Flags().StringVar(&textField, "text-field", "", "product text column (default from config)")

	return cmd
}

// labeledPath returns input with its extension replaced by _labeled.xlsx
func labeledPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_labeled.xlsx"
}

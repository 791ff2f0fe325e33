package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"autolabel/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var labelOutputPath string

// labelFileInput mirrors the batch request body: a category plus the
// record list.
type labelFileInput struct {
	Category string          `json:"category"`
	Data     []models.Record `json:"data"`
}

var labelCmd = &cobra.Command{
	Use:   "label <batch.json>",
	Short: "Label a batch file and print the results",
	Long: `Reads a JSON batch file of shape {"category": ..., "data": [...]},
runs the labeling pipeline, and prints a result table. Use --output to
also write the raw results as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read batch file: %w", err)
		}
		var input labelFileInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("parse batch file: %w", err)
		}
		if input.Category == "" || len(input.Data) == 0 {
			return fmt.Errorf("batch file must provide category and data")
		}

		results := appInstance.Pipeline.Run(cmd.Context(), input.Category, input.Data)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Type", "Label", "Catalog ID", "Freeform Labels", "Time (s)"})
		table.SetBorder(false)
		for _, r := range results {
			table.Append([]string{
				r.ID,
				r.Type,
				r.Label,
				r.LabelCatalogID,
				strings.Join(r.RefLLMLabel, ", "),
				fmt.Sprintf("%.2f", r.ProcessTime),
			})
		}
		table.Render()

		labeled := 0
		for _, r := range results {
			if r.Label != "" {
				labeled++
			}
		}
		color.Green("Labeled %d/%d records in category %q", labeled, len(results), input.Category)

		if labelOutputPath != "" {
			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal results: %w", err)
			}
			if err := os.WriteFile(labelOutputPath, out, 0o644); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			color.Cyan("Results written to %s", labelOutputPath)
		}
		return nil
	},
}

func init() {
	labelCmd.Flags().StringVarP(&labelOutputPath, "output", "o", "", "write raw results JSON to this path")
	rootCmd.AddCommand(labelCmd)
}

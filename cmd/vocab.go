package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"autolabel/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// vocabFile is the JSON shape of a vocabulary seed file.
type vocabFile struct {
	Category string `json:"category"`
	Labels   []struct {
		Label     string `json:"label"`
		CatalogID string `json:"catalog_id"`
	} `json:"labels"`
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the canonical label vocabulary",
}

var vocabSyncCmd = &cobra.Command{
	Use:   "sync <vocab.json>",
	Short: "Embed and upsert a category vocabulary into the label index",
	Long: `Reads a JSON vocabulary file of shape
{"category": ..., "labels": [{"label": ..., "catalog_id": ...}]},
embeds each canonical label, and upserts it into the pgvector label
index. Catalog ids are also written to the primary store when one is
configured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		if appInstance.Embedder == nil {
			return fmt.Errorf("vocab sync requires an embedding provider")
		}
		if appInstance.LabelIndex == nil {
			return fmt.Errorf("vocab sync requires the label index (database.vector.dsn)")
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read vocab file: %w", err)
		}
		var vf vocabFile
		if err := json.Unmarshal(raw, &vf); err != nil {
			return fmt.Errorf("parse vocab file: %w", err)
		}
		if vf.Category == "" || len(vf.Labels) == 0 {
			return fmt.Errorf("vocab file must provide category and labels")
		}

		ctx := cmd.Context()
		synced := 0
		for _, entry := range vf.Labels {
			vec, err := appInstance.Embedder.Embed(ctx, entry.Label)
			if err != nil {
				return fmt.Errorf("embed label %q: %w", entry.Label, err)
			}
			if err := appInstance.LabelIndex.Upsert(ctx, &models.VocabEntry{
				Category:  vf.Category,
				Label:     entry.Label,
				CatalogID: entry.CatalogID,
				Vector:    vec,
			}); err != nil {
				return fmt.Errorf("upsert label %q: %w", entry.Label, err)
			}
			if appInstance.PrimaryStore != nil && entry.CatalogID != "" {
				if err := appInstance.PrimaryStore.UpsertCatalogEntry(ctx, entry.Label, entry.CatalogID); err != nil {
					return fmt.Errorf("upsert catalog entry %q: %w", entry.Label, err)
				}
			}
			synced++
		}

		color.Green("Synced %d labels into category %q", synced, vf.Category)
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabSyncCmd)
	rootCmd.AddCommand(vocabCmd)
}

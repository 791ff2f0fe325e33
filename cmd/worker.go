package cmd

import (
	"fmt"

	"autolabel/internal/worker"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background labeling worker",
	Long: `Consumes async labeling batches from the Redis queue, runs the
pipeline, and stores results on the job record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		cfg := appInstance.Config
		if cfg.Redis.Address == "" {
			return fmt.Errorf("worker requires redis.address to be configured")
		}
		if appInstance.JobStore == nil {
			return fmt.Errorf("worker requires the primary store (database.primary.dsn)")
		}

		processor := &worker.LabelBatchProcessor{
			Labeler: appInstance.Pipeline,
			Jobs:    appInstance.JobStore,
		}
		return worker.Run(
			cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
			cfg.Worker.Concurrency, cfg.Worker.Queues,
			processor,
		)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

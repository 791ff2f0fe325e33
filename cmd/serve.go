package cmd

import (
	"fmt"
	"net/http"

	"autolabel/internal/apihandlers"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the labeling HTTP API server",
	Long: `Starts an HTTP server exposing the batch labeling endpoint plus
async job submission/lookup when Redis and the primary store are
configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		router := gin.Default()
		handler := apihandlers.NewAPIHandler(appInstance.Pipeline, appInstance.JobStore, appInstance.JobClient)

		v1 := router.Group("/api/v1")
		{
			v1.POST("/label", handler.LabelBatchHandler)
			v1.POST("/label/async", handler.AsyncLabelHandler)
			v1.GET("/label/jobs/:id", handler.GetJobHandler)
			v1.GET("/categories", handler.CategoriesHandler)
		}

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Server.Port
		}
		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("starting labeling API server on http://%s", listenAddr)
		return router.Run(listenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

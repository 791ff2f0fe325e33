package apihandlers

import (
	"context"
	"fmt"
	"net/http"

	"autolabel/internal/models"
	"autolabel/internal/store"

	"github.com/gin-gonic/gin"
)

// Labeler is the synchronous batch labeling pipeline.
type Labeler interface {
	Run(ctx context.Context, category string, records []models.Record) []models.LabeledResult
}

type APIHandler struct {
	Labeler   Labeler
	Jobs      store.JobStore
	JobClient store.JobClient
}

func NewAPIHandler(labeler Labeler, jobs store.JobStore, jobClient store.JobClient) *APIHandler {
	return &APIHandler{Labeler: labeler, Jobs: jobs, JobClient: jobClient}
}

// LabelRequest is the batch classify request body.
type LabelRequest struct {
	Category string          `json:"category"`
	Data     []models.Record `json:"data"`
}

// LabelResponse carries one result per input item, in input order.
type LabelResponse struct {
	Results []models.LabeledResult `json:"results"`
}

// LabelBatchHandler labels a batch synchronously.
func (h *APIHandler) LabelBatchHandler(c *gin.Context) {
	req, err := parseLabelRequest(c)
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results := h.Labeler.Run(c.Request.Context(), req.Category, req.Data)
	c.JSON(http.StatusOK, LabelResponse{Results: results})
}

// CategoriesHandler lists the closed category set a batch may use.
func (h *APIHandler) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

func parseLabelRequest(c *gin.Context) (LabelRequest, error) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	if req.Category == "" {
		return req, fmt.Errorf("missing required field: category")
	}
	if len(req.Data) == 0 {
		return req, fmt.Errorf("missing required field: data")
	}
	for i, item := range req.Data {
		if item.ID == "" {
			return req, fmt.Errorf("data[%d]: missing required field: id", i)
		}
	}
	return req, nil
}

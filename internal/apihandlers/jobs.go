package apihandlers

import (
	"errors"
	"fmt"
	"net/http"

	"autolabel/internal/models"
	"autolabel/internal/store"
	"autolabel/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AsyncLabelHandler accepts a batch, records a job, and enqueues it for
// the background worker. Requires Redis and the primary store.
func (h *APIHandler) AsyncLabelHandler(c *gin.Context) {
	if h.Jobs == nil || h.JobClient == nil {
		Unavailable(c, "async labeling is not configured (missing redis or primary store)")
		return
	}

	req, err := parseLabelRequest(c)
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job := &models.BatchJob{
		ID:        uuid.New(),
		Category:  req.Category,
		Status:    models.JobStatusEnqueued,
		ItemCount: len(req.Data),
	}
	if err := h.Jobs.CreateJob(c.Request.Context(), job); err != nil {
		Internal(c, fmt.Sprintf("create job: %v", err))
		return
	}

	payload := tasks.LabelBatchPayload{
		JobID:    job.ID,
		Category: req.Category,
		Records:  req.Data,
	}
	if err := h.JobClient.EnqueueLabelBatch(c.Request.Context(), payload); err != nil {
		if ferr := h.Jobs.FailJob(c.Request.Context(), job.ID, "enqueue failed"); ferr != nil {
			Internal(c, fmt.Sprintf("enqueue job: %v (and failed to record: %v)", err, ferr))
			return
		}
		Internal(c, fmt.Sprintf("enqueue job: %v", err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "status": job.Status})
}

// GetJobHandler returns the status and, once completed, the results of
// an async batch job.
func (h *APIHandler) GetJobHandler(c *gin.Context) {
	if h.Jobs == nil {
		Unavailable(c, "async labeling is not configured (missing primary store)")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "Invalid job id: "+err.Error())
		return
	}

	job, err := h.Jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "job not found")
			return
		}
		Internal(c, fmt.Sprintf("get job: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": job})
}

package apihandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autolabel/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLabeler struct {
	gotCategory string
	gotRecords  []models.Record
}

func (f *fakeLabeler) Run(ctx context.Context, category string, records []models.Record) []models.LabeledResult {
	f.gotCategory = category
	f.gotRecords = records
	results := make([]models.LabeledResult, len(records))
	for i, rec := range records {
		results[i] = models.LabeledResult{
			ID:          rec.ID,
			Label:       models.LabelRecruitment,
			RefLabelMap: []string{models.LabelRecruitment},
			RefLLMLabel: []string{models.LabelRecruitment},
		}
	}
	return results
}

func newTestRouter(h *APIHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/label", h.LabelBatchHandler)
	r.POST("/api/v1/label/async", h.AsyncLabelHandler)
	r.GET("/api/v1/categories", h.CategoriesHandler)
	return r
}

func TestLabelBatchHandlerReturnsResultsInOrder(t *testing.T) {
	labeler := &fakeLabeler{}
	router := newTestRouter(NewAPIHandler(labeler, nil, nil))

	body := `{"category": "Banking", "data": [
		{"id": "a", "title": "Tuyển dụng CTV"},
		{"id": "b", "title": "Tuyển dụng nhân viên"}
	]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/label", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Banking", labeler.gotCategory)

	var resp LabelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a", resp.Results[0].ID)
	assert.Equal(t, "b", resp.Results[1].ID)
}

func TestLabelBatchHandlerRejectsMissingCategory(t *testing.T) {
	router := newTestRouter(NewAPIHandler(&fakeLabeler{}, nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/label", strings.NewReader(`{"data": [{"id": "a"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category")
}

func TestLabelBatchHandlerRejectsEmptyData(t *testing.T) {
	router := newTestRouter(NewAPIHandler(&fakeLabeler{}, nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/label", strings.NewReader(`{"category": "Banking", "data": []}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLabelBatchHandlerRejectsItemWithoutID(t *testing.T) {
	router := newTestRouter(NewAPIHandler(&fakeLabeler{}, nil, nil))

	body := `{"category": "Banking", "data": [{"id": "a"}, {"title": "no id"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/label", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "data[1]")
}

func TestAsyncHandlerUnavailableWithoutJobInfra(t *testing.T) {
	router := newTestRouter(NewAPIHandler(&fakeLabeler{}, nil, nil))

	body := `{"category": "Banking", "data": [{"id": "a"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/label/async", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCategoriesHandlerListsClosedSet(t *testing.T) {
	router := newTestRouter(NewAPIHandler(&fakeLabeler{}, nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.Categories, resp.Categories)
	assert.Contains(t, resp.Categories, "Banking")
}

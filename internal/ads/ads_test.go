package ads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDetectorPredictIsAd(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotText = req.Text

		json.NewEncoder(w).Encode(predictResponse{IsAd: true})
	}))
	defer srv.Close()

	d := NewHTTPDetector(srv.URL)
	isAd, err := d.PredictIsAd(context.Background(), "giảm giá sốc, inbox ngay")

	require.NoError(t, err)
	assert.True(t, isAd)
	assert.Equal(t, "giảm giá sốc, inbox ngay", gotText)
}

func TestHTTPDetectorNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewHTTPDetector(srv.URL)
	_, err := d.PredictIsAd(context.Background(), "text")
	assert.Error(t, err)
}

func TestHTTPDetectorUnreachableIsError(t *testing.T) {
	d := NewHTTPDetector("http://127.0.0.1:0")
	_, err := d.PredictIsAd(context.Background(), "text")
	assert.Error(t, err)
}

func TestNoopDetectorNeverFlags(t *testing.T) {
	isAd, err := NoopDetector{}.PredictIsAd(context.Background(), "giảm giá sốc")
	require.NoError(t, err)
	assert.False(t, isAd)
}

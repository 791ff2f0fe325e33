package pipeline

import (
	"context"
	"testing"

	"autolabel/internal/ads"
	"autolabel/internal/canonical"
	"autolabel/internal/models"
	"autolabel/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Recruitment post on a Facebook source: the rule engine fires, the
// override canonicalizes it, and the catalog id resolves — no model or
// index involved.
func TestRecruitmentPostEndToEnd(t *testing.T) {
	engine := rules.NewEngine(ads.NoopDetector{})
	canonicalizer := canonical.NewCanonicalizer(nil, nil, nil)
	fc := &fakeClassifier{result: models.RawLabelSet{Labels: []string{"unexpected"}}}

	p := New(engine, fc, canonicalizer, canonicalizer.Catalog(), 2)

	records := []models.Record{{
		ID:    "r1",
		Type:  "fbPost",
		Title: "Tuyển dụng nhân viên kinh doanh",
	}}
	results := p.Run(context.Background(), "Banking", records)

	require.Len(t, results, 1)
	res := results[0]
	assert.Zero(t, fc.callCount(), "rule match must bypass the generative classifier")
	assert.Equal(t, []string{models.LabelRecruitment}, res.RefLLMLabel)
	assert.Equal(t, []string{models.LabelRecruitment}, res.RefLabelMap)
	assert.Equal(t, models.LabelRecruitment, res.Label)
	assert.Equal(t, "100003", res.LabelCatalogID)
	assert.Greater(t, res.ProcessTime, 0.0)
}

package rules

import (
	"context"
	"errors"
	"testing"

	"autolabel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	isAd  bool
	err   error
	calls int
}

func (d *stubDetector) PredictIsAd(ctx context.Context, text string) (bool, error) {
	d.calls++
	return d.isAd, d.err
}

func TestRecruitmentRuleFiresOnFacebookPost(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "Tuyển dụng nhân viên kinh doanh", "Banking", "fbPost", "")

	require.NotNil(t, set)
	assert.Equal(t, []string{models.LabelRecruitment}, set.Labels)
	assert.Equal(t, 1.0, set.Confidence)
}

func TestAdRuleTakesPrecedenceOverKeywords(t *testing.T) {
	// Text matches the minigame rule too; the ad rule is first and wins.
	e := NewEngine(&stubDetector{isAd: true})
	set := e.Classify(context.Background(), "Tham gia minigame trúng quà", "Retail", "fbPost", "")

	require.NotNil(t, set)
	assert.Equal(t, []string{models.LabelClassifiedAd}, set.Labels)
}

func TestEditorialSourcesSkipAdsDetector(t *testing.T) {
	d := &stubDetector{isAd: true}
	e := NewEngine(d)

	set := e.Classify(context.Background(), "bài viết bình thường", "Healthcare", models.SourceNewsTopic, "")
	assert.Nil(t, set)
	assert.Zero(t, d.calls, "editorial sources must not consult the ads detector")

	set = e.Classify(context.Background(), "bài viết bình thường", "Healthcare", models.SourceFBPageTopic, "")
	assert.Nil(t, set)
	assert.Zero(t, d.calls)
}

func TestKeywordRulesSkipNewsTopic(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "đang livestream sự kiện", "Healthcare", models.SourceNewsTopic, "")
	assert.Nil(t, set, "news articles are exempt from the livestream rule")
}

func TestKeywordMatchingIsCaseInsensitive(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "Mời tham gia MiniGame cuối tuần", "Retail", "fbPost", "")

	require.NotNil(t, set)
	assert.Equal(t, []string{models.LabelMinigame}, set.Labels)
}

func TestStockRuleBySiteName(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "nhận định thị trường hôm nay", "Banking", models.SourceNewsTopic, "fireant.vn")

	require.NotNil(t, set)
	assert.Equal(t, []string{models.LabelStockMarket}, set.Labels)
	assert.Equal(t, 1.0, set.Confidence)
}

func TestStockRuleByKeyword(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "VN30 tăng mạnh phiên chiều", "Banking", models.SourceNewsTopic, "cafef.vn")

	require.NotNil(t, set)
	assert.Equal(t, []string{models.LabelStockMarket}, set.Labels)
}

func TestStockRuleRequiresListedCategory(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "chứng khoán tăng điểm", "Healthcare", models.SourceNewsTopic, "")
	assert.Nil(t, set, "stock rule only applies to the fixed category set")
}

func TestNoRuleMatchDefersToModel(t *testing.T) {
	e := NewEngine(&stubDetector{})
	set := e.Classify(context.Background(), "một bài viết về du lịch", "Healthcare", "fbPost", "")
	assert.Nil(t, set)
}

func TestDetectorFailureDegradesToNonAd(t *testing.T) {
	e := NewEngine(&stubDetector{err: errors.New("connection refused")})
	set := e.Classify(context.Background(), "một bài viết về du lịch", "Healthcare", "fbPost", "")
	assert.Nil(t, set, "a failing detector must not block rule evaluation")
}

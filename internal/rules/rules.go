// Package rules implements the deterministic classification stage that
// runs before the generative model. Rules are held as an ordered table
// of (predicate, fixed labels) pairs; the first match wins and the
// order below is a contract, since several rules can apply to the same
// text.
package rules

import (
	"context"
	"strings"

	"autolabel/internal/ads"
	"autolabel/internal/models"

	log "github.com/sirupsen/logrus"
)

var (
	minigameKeywords    = []string{"minigame", "mini game", "mini-game"}
	recruitmentKeywords = []string{"tuyển dụng", "tuyển nhân sự", "tuyển ctv"}
	livestreamKeywords  = []string{"livestream", "live stream"}
	stockKeywords       = []string{"chứng khoán", "index", "in-dex", "vn30", "vnindex"}

	// financePortal short-circuits the stock rule regardless of text.
	financePortal = "fireant.vn"

	// stockCategories are the categories whose audiences discuss the
	// stock market enough to warrant the dedicated rule.
	stockCategories = map[string]bool{
		"FMCG": true, "Retail": true, "Banking": true,
		"Digital Payments": true, "Insurance": true,
		"Investment Services": true, "Real Estate Development": true,
		"Energy & Utilities": true, "Software & IT Services": true,
		"Telecommunications & Internet": true, "Electronic Products": true,
		"Food & Beverage": true, "Home & Living": true,
		"Hospitality & Leisure": true, "Conglomerates": true,
		"Automotive": true,
	}
)

type input struct {
	lowered  string
	category string
	source   string
	siteName string
	isAd     bool
}

type rule struct {
	name   string
	labels []string
	match  func(in *input) bool
}

// Engine evaluates the rule table against one merged text.
type Engine struct {
	detector ads.Detector
	rules    []rule
}

func NewEngine(detector ads.Detector) *Engine {
	if detector == nil {
		detector = ads.NoopDetector{}
	}
	return &Engine{
		detector: detector,
		rules: []rule{
			{
				name:   "classified-ad",
				labels: []string{models.LabelClassifiedAd},
				match: func(in *input) bool {
					return in.isAd && in.source != models.SourceNewsTopic && in.source != models.SourceFBPageTopic
				},
			},
			{
				name:   "minigame",
				labels: []string{models.LabelMinigame},
				match: func(in *input) bool {
					return in.source != models.SourceNewsTopic && containsAny(in.lowered, minigameKeywords)
				},
			},
			{
				name:   "recruitment",
				labels: []string{models.LabelRecruitment},
				match: func(in *input) bool {
					return in.source != models.SourceNewsTopic && containsAny(in.lowered, recruitmentKeywords)
				},
			},
			{
				name:   "livestream",
				labels: []string{models.LabelLivestream},
				match: func(in *input) bool {
					return in.source != models.SourceNewsTopic && containsAny(in.lowered, livestreamKeywords)
				},
			},
			{
				name:   "stock-market",
				labels: []string{models.LabelStockMarket},
				match: func(in *input) bool {
					if !stockCategories[in.category] {
						return false
					}
					return in.siteName == financePortal || containsAny(in.lowered, stockKeywords)
				},
			},
		},
	}
}

// Classify returns the fixed label set of the first matching rule, or
// nil when no rule applies and classification should defer to the
// generative model. A failing ads detector degrades to "not an ad".
func (e *Engine) Classify(ctx context.Context, text, category, source, siteName string) *models.RawLabelSet {
	in := &input{
		lowered:  strings.ToLower(text),
		category: category,
		source:   source,
		siteName: siteName,
	}

	// The detector only influences the first rule, and editorial
	// sources are exempt from it, so skip the remote call for those.
	if source != models.SourceNewsTopic && source != models.SourceFBPageTopic {
		isAd, err := e.detector.PredictIsAd(ctx, text)
		if err != nil {
			log.Warnf("ads detector failed, treating text as non-ad: %v", err)
		} else {
			in.isAd = isAd
		}
	}

	for _, r := range e.rules {
		if r.match(in) {
			log.Debugf("rule %q matched", r.name)
			return &models.RawLabelSet{
				Labels:     append([]string(nil), r.labels...),
				Confidence: 1.0,
			}
		}
	}
	return nil
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

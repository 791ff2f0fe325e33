package models

// Source types carried on input records. Only these two are treated as
// editorial sources by the rule engine.
const (
	SourceNewsTopic   = "newsTopic"
	SourceFBPageTopic = "fbPageTopic"
)

// Fixed labels produced by the rule engine and the classifier fallback.
const (
	LabelClassifiedAd   = "Rao vặt"
	LabelMinigame       = "Minigame"
	LabelRecruitment    = "Tuyển dụng"
	LabelLivestream     = "Livestream"
	LabelStockMarket    = "Chứng khoán"
	LabelGeneralMention = "Đề cập chung"
)

// Categories is the closed set of business categories a batch may use.
var Categories = []string{
	"FMCG", "Retail", "Education Services", "Banking",
	"Digital Payments", "Insurance", "Financial Services",
	"Investment Services", "Real Estate Development", "Healthcare",
	"Energy & Utilities", "Software & IT Services",
	"Ride-Hailing & Delivery", "Logistics & Delivery",
	"Telecommunications & Internet", "Electronic Products",
	"Food & Beverage", "Home & Living", "Hospitality & Leisure",
	"Conglomerates", "Beauty & Personal Care", "Automotive",
	"Entertainment & Media", "Industrial Parks & Zones",
	"Mobile Applications", "E-commerce",
}

// Record is one input item of a labeling batch. The batch category is
// shared across records and carried separately. Records are immutable
// once submitted.
type Record struct {
	ID          string `json:"id"`
	TopicName   string `json:"topic_name"`
	Type        string `json:"type"`
	TopicID     string `json:"topic_id"`
	SiteID      string `json:"siteId"`
	SiteName    string `json:"siteName"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// RawLabelSet is the classification output for one unique text: up to
// three freeform labels plus a confidence in [0,1]. It is produced once
// per text signature and never mutated afterwards.
type RawLabelSet struct {
	Labels     []string `json:"labels"`
	Confidence float64  `json:"confidence"`
}

// LabelMatch is a single nearest-neighbor hit from the label index.
type LabelMatch struct {
	Label string
	Score float64
}

// LabeledResult is the final per-record output. Field names follow the
// batch response wire format.
type LabeledResult struct {
	ID             string   `json:"id"`
	TopicID        string   `json:"topic_id"`
	SiteID         string   `json:"siteId"`
	Type           string   `json:"type"`
	Label          string   `json:"label"`
	LabelCatalogID string   `json:"label_catalog_id,omitempty"`
	RefLabelMap    []string `json:"ref_label_map"`
	RefLLMLabel    []string `json:"ref_llm_label"`
	ProcessTime    float64  `json:"process_time"`
}

package canonical

import "autolabel/internal/models"

// Catalog resolves canonical label names to stable catalog ids. It is
// loaded once at startup (from the primary store when available) and
// read-only afterwards.
type Catalog struct {
	byLabel map[string]string
}

func NewCatalog(entries map[string]string) *Catalog {
	byLabel := make(map[string]string, len(entries))
	for label, id := range entries {
		byLabel[label] = id
	}
	return &Catalog{byLabel: byLabel}
}

// DefaultCatalog covers the fixed rule-engine labels, so the pipeline
// stays functional without a primary store.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]string{
		models.LabelClassifiedAd:   "100001",
		models.LabelMinigame:       "100002",
		models.LabelRecruitment:    "100003",
		models.LabelLivestream:     "100004",
		models.LabelStockMarket:    "100005",
		models.LabelGeneralMention: "100006",
	})
}

// MergeCatalog overlays entries on top of a base catalog.
func MergeCatalog(base *Catalog, entries map[string]string) *Catalog {
	merged := make(map[string]string, len(base.byLabel)+len(entries))
	for label, id := range base.byLabel {
		merged[label] = id
	}
	for label, id := range entries {
		merged[label] = id
	}
	return &Catalog{byLabel: merged}
}

// CatalogID returns the id for a canonical label, or false on a miss.
func (c *Catalog) CatalogID(label string) (string, bool) {
	id, ok := c.byLabel[label]
	return id, ok
}

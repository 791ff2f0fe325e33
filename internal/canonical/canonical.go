// Package canonical maps freeform labels produced by the generative
// stage onto the closed per-category vocabulary. Priority overrides run
// first; everything else goes through embedding nearest-neighbor search
// and a best-score-across-all-labels reduction.
package canonical

import (
	"context"
	"strings"

	"autolabel/internal/models"

	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"
)

// Embedder is the text -> vector capability the canonicalizer needs.
type Embedder interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

// Index is the nearest-neighbor query surface of the label index.
type Index interface {
	Query(ctx context.Context, vector pgvector.Vector, topK int, category string) ([]models.LabelMatch, error)
}

// overrides maps lowercased freeform labels straight to a canonical
// label. These categories are unambiguous and must not be diluted by
// semantic search noise.
var overrides = map[string]string{
	"tuyển dụng": models.LabelRecruitment,
	"livestream": models.LabelLivestream,
	"minigame":   models.LabelMinigame,
	"chứng khoán": models.LabelStockMarket,
	"rao vặt":    models.LabelClassifiedAd,
}

type Canonicalizer struct {
	embedder Embedder
	index    Index
	catalog  *Catalog
}

func NewCanonicalizer(embedder Embedder, index Index, catalog *Catalog) *Canonicalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Canonicalizer{embedder: embedder, index: index, catalog: catalog}
}

// Catalog returns the catalog id table used for resolved labels.
func (c *Canonicalizer) Catalog() *Catalog { return c.catalog }

type candidate struct {
	match models.LabelMatch
	ok    bool
}

// Canonicalize resolves a freeform label list to canonical labels.
// An override hit returns that single label immediately. Otherwise one
// top-1 query runs per freeform label (concurrently) and the single
// best-scoring canonical label across all of them wins. No hit at all
// yields an empty list, never an error.
func (c *Canonicalizer) Canonicalize(ctx context.Context, category string, freeform []string) []string {
	if len(freeform) == 0 {
		return []string{}
	}

	for _, label := range freeform {
		if mapped, ok := overrides[strings.ToLower(strings.TrimSpace(label))]; ok {
			return []string{mapped}
		}
	}

	if c.embedder == nil || c.index == nil {
		log.Warn("canonicalizer has no embedder or index configured")
		return []string{}
	}

	results := make(chan candidate, len(freeform))
	for _, label := range freeform {
		go func(label string) {
			results <- c.bestMatch(ctx, category, label)
		}(label)
	}

	best := candidate{}
	for range freeform {
		cand := <-results
		if !cand.ok {
			continue
		}
		if !best.ok || cand.match.Score > best.match.Score {
			best = cand
		}
	}
	if !best.ok {
		return []string{}
	}
	return []string{best.match.Label}
}

func (c *Canonicalizer) bestMatch(ctx context.Context, category, label string) candidate {
	vec, err := c.embedder.Embed(ctx, label)
	if err != nil {
		log.Warnf("embedding failed for label %q: %v", label, err)
		return candidate{}
	}
	matches, err := c.index.Query(ctx, vec, 1, category)
	if err != nil {
		log.Warnf("label index query failed for %q: %v", label, err)
		return candidate{}
	}
	if len(matches) == 0 {
		return candidate{}
	}
	return candidate{match: matches[0], ok: true}
}

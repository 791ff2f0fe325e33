// Package pipeline orchestrates batch labeling: deduplicate by text
// signature, classify each unique text over a bounded worker pool
// (rules first, generative model as fallback), canonicalize, and expand
// results back over the full batch in input order.
package pipeline

import (
	"context"
	"sync"
	"time"

	"autolabel/internal/models"

	log "github.com/sirupsen/logrus"
)

// DefaultWorkers bounds classification concurrency; unique texts are
// independent but the external services are rate-limited.
const DefaultWorkers = 8

// RuleClassifier is the deterministic stage. A nil result defers to the
// generative classifier.
type RuleClassifier interface {
	Classify(ctx context.Context, text, category, source, siteName string) *models.RawLabelSet
}

// GenerativeClassifier is the model-backed stage; it absorbs its own
// failures and always returns a label set.
type GenerativeClassifier interface {
	Classify(ctx context.Context, text, category, topicName string) models.RawLabelSet
}

// LabelResolver maps freeform labels onto the canonical vocabulary.
type LabelResolver interface {
	Canonicalize(ctx context.Context, category string, freeform []string) []string
}

// CatalogLookup resolves canonical label names to catalog ids.
type CatalogLookup interface {
	CatalogID(label string) (string, bool)
}

type Pipeline struct {
	rules      RuleClassifier
	classifier GenerativeClassifier
	resolver   LabelResolver
	catalog    CatalogLookup
	workers    int
}

func New(rules RuleClassifier, classifier GenerativeClassifier, resolver LabelResolver, catalog CatalogLookup, workers int) *Pipeline {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pipeline{
		rules:      rules,
		classifier: classifier,
		resolver:   resolver,
		catalog:    catalog,
		workers:    workers,
	}
}

// outcome is the per-signature classification result. It is written
// exactly once by the worker that owns the signature.
type outcome struct {
	raw       models.RawLabelSet
	canonical []string
}

type sigOutcome struct {
	sig string
	out outcome
}

// Run labels a batch. The response always carries one result per input
// record, in input order; no per-record failure aborts the batch.
func (p *Pipeline) Run(ctx context.Context, category string, records []models.Record) []models.LabeledResult {
	start := time.Now()
	keyed := keyRecords(records)
	unique := dedupKeyed(keyed)
	log.Infof("labeling batch: %d records, %d unique texts, category=%q", len(records), len(unique), category)

	jobs := make(chan keyedRecord)
	outs := make(chan sigOutcome, len(unique))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for kr := range jobs {
				outs <- sigOutcome{sig: kr.sig, out: p.classifyOne(ctx, category, kr)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, kr := range unique {
			select {
			case jobs <- kr:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outs)
	}()

	bySig := make(map[string]outcome, len(unique))
	for so := range outs {
		bySig[so.sig] = so.out
	}

	return p.expand(keyed, bySig, start)
}

// classifyOne runs rules then the generative fallback for one unique
// text. Panics are contained here so a single bad text cannot take the
// batch down.
func (p *Pipeline) classifyOne(ctx context.Context, category string, kr keyedRecord) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("classification panic for signature %s: %v", kr.sig, r)
			out = outcome{raw: models.RawLabelSet{Labels: []string{}}, canonical: []string{}}
		}
	}()

	raw := p.rules.Classify(ctx, kr.merged, category, kr.rec.Type, kr.rec.SiteName)
	if raw == nil {
		set := p.classifier.Classify(ctx, kr.merged, category, kr.rec.TopicName)
		raw = &set
	}

	canonical := []string{}
	if len(raw.Labels) > 0 {
		canonical = p.resolver.Canonicalize(ctx, category, raw.Labels)
	}
	return outcome{raw: *raw, canonical: canonical}
}

// expand produces one result per original record via signature lookup.
// Duplicates are cache hits; a missing signature degrades to empty
// label lists.
func (p *Pipeline) expand(keyed []keyedRecord, bySig map[string]outcome, start time.Time) []models.LabeledResult {
	results := make([]models.LabeledResult, len(keyed))
	for i, kr := range keyed {
		out, ok := bySig[kr.sig]
		if !ok {
			log.Warnf("no classification outcome for signature %s", kr.sig)
			out = outcome{raw: models.RawLabelSet{Labels: []string{}}, canonical: []string{}}
		}

		res := models.LabeledResult{
			ID:          kr.rec.ID,
			TopicID:     kr.rec.TopicID,
			SiteID:      kr.rec.SiteID,
			Type:        kr.rec.Type,
			RefLabelMap: out.canonical,
			RefLLMLabel: out.raw.Labels,
			ProcessTime: time.Since(start).Seconds(),
		}
		if res.RefLLMLabel == nil {
			res.RefLLMLabel = []string{}
		}
		if len(out.canonical) > 0 {
			res.Label = out.canonical[0]
			if p.catalog != nil {
				if id, ok := p.catalog.CatalogID(res.Label); ok {
					res.LabelCatalogID = id
				}
			}
		}
		results[i] = res
	}
	return results
}

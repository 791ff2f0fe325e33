// Package textprep normalizes and shortens post text before it reaches
// the classifier. Long texts are replaced with a local extractive
// summary instead of a model call.
package textprep

import (
	"regexp"
	"sort"
	"strings"

	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxTokens is the longest token sequence passed to the classifier
	// unchanged. Anything longer is summarized first.
	MaxTokens = 100
	// SummaryWordLimit is the target word budget of the extractive summary.
	SummaryWordLimit = 50
)

// tokenPattern splits text into word tokens and standalone punctuation,
// unicode-aware so Vietnamese diacritics count as word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|\S`)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize splits text into word/punctuation tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Prepare returns the text handed to the generative classifier: the
// token sequence unchanged when short enough, otherwise an extractive
// summary with a first-two-sentences fallback.
func Prepare(text string) string {
	tokens := Tokenize(text)
	if len(tokens) <= MaxTokens {
		return strings.Join(tokens, " ")
	}
	if summary := Summarize(text, SummaryWordLimit); summary != "" {
		return summary
	}
	log.Debug("summarizer produced no sentences, falling back to leading chunks")
	return firstChunks(text, 2)
}

// Summarize builds an extractive summary of roughly wordLimit words:
// sentences are scored by normalized content-word frequency and the
// best ones are kept in original order until the budget is spent.
// Returns "" when no sentences can be segmented.
func Summarize(text string, wordLimit int) string {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return ""
	}
	sents := tokenizer.Tokenize(text)
	if len(sents) == 0 {
		return ""
	}

	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 1 {
			freq[w]++
		}
	}

	type scored struct {
		index int
		text  string
		words int
		score float64
	}
	var candidates []scored
	for i, s := range sents {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		words := wordPattern.FindAllString(strings.ToLower(t), -1)
		if len(words) == 0 {
			continue
		}
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		candidates = append(candidates, scored{
			index: i,
			text:  t,
			words: len(words),
			score: float64(total) / float64(len(words)),
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	budget := wordLimit
	var picked []scored
	for _, c := range candidates {
		if len(picked) > 0 && c.words > budget {
			continue
		}
		picked = append(picked, c)
		budget -= c.words
		if budget <= 0 {
			break
		}
	}

	// Restore document order before joining.
	sort.Slice(picked, func(i, j int) bool { return picked[i].index < picked[j].index })
	parts := make([]string, len(picked))
	for i, c := range picked {
		parts[i] = c.text
	}
	return strings.Join(parts, " ")
}

// firstChunks joins the first n ". "-delimited chunks of text.
func firstChunks(text string, n int) string {
	chunks := strings.SplitN(text, ". ", n+1)
	if len(chunks) > n {
		chunks = chunks[:n]
	}
	return strings.Join(chunks, ". ")
}

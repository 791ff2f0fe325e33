package textprep

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText strips HTML markup and collapses runs of whitespace. Posts
// scraped from news sites and social pages frequently arrive with
// residual markup that would pollute signatures and keyword matching.
func CleanText(s string) string {
	if strings.ContainsRune(s, '<') {
		s = stripHTML(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

func stripHTML(s string) string {
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
}

package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"autolabel/internal/models"
	"autolabel/internal/textprep"
)

// Signature fingerprints the normalized text of a record. Records with
// equal signatures are classified once and share the result; the
// fingerprint is a pure function of the three text fields.
func Signature(title, content, description string) string {
	combined := strings.ToLower(strings.TrimSpace(title + " " + content + " " + description))
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}

// MergeText joins the non-empty text fields of a record with single
// spaces; it is the input to both rule matching and classification.
func MergeText(title, content, description string) string {
	var parts []string
	for _, p := range []string{title, content, description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// keyedRecord pairs a record with its precomputed signature and merged
// text so both are computed exactly once per record.
type keyedRecord struct {
	rec    models.Record
	sig    string
	merged string
}

func keyRecords(records []models.Record) []keyedRecord {
	keyed := make([]keyedRecord, len(records))
	for i, r := range records {
		title := textprep.CleanText(r.Title)
		content := textprep.CleanText(r.Content)
		description := textprep.CleanText(r.Description)
		keyed[i] = keyedRecord{
			rec:    r,
			sig:    Signature(title, content, description),
			merged: MergeText(title, content, description),
		}
	}
	return keyed
}

// Deduplicate returns the subset of records carrying the first
// occurrence of each signature, preserving input order.
func Deduplicate(records []models.Record) []models.Record {
	seen := make(map[string]bool, len(records))
	var out []models.Record
	for _, kr := range keyRecords(records) {
		if seen[kr.sig] {
			continue
		}
		seen[kr.sig] = true
		out = append(out, kr.rec)
	}
	return out
}

func dedupKeyed(keyed []keyedRecord) []keyedRecord {
	seen := make(map[string]bool, len(keyed))
	var out []keyedRecord
	for _, kr := range keyed {
		if seen[kr.sig] {
			continue
		}
		seen[kr.sig] = true
		out = append(out, kr)
	}
	return out
}

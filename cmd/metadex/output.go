package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/metadex"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/extract"
	"github.com/poiesic/metadex/ingestion"
	"github.com/poiesic/metadex/search"
)

func writeJSON(w io.Writer, docs []core.IndexedDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func writeExtraction(w io.Writer, strategy string, report *ingestion.Report) {
	fmt.Fprintf(w, "Strategy: %s\n", strategy)
	for _, doc := range report.Documents {
		m := doc.Metadata
		fmt.Fprintf(w, "%s: %s\n", doc.ID, doc.Title)
		fmt.Fprintf(w, "  service=%s version=%s doc_type=%s deprecated=%t\n",
			m.Service, m.Version, m.DocType, m.Deprecated)
		if len(m.RateLimits) > 0 {
			fmt.Fprintf(w, "  rate_limits=%s\n", strings.Join(m.RateLimits, ", "))
		}
	}
	if n := report.Outcomes[extract.OutcomeFallback]; n > 0 {
		fmt.Fprintf(w, "Fallbacks: %d\n", n)
	}
}

func writeQueryResult(w io.Writer, result *metadex.QueryResult) {
	fmt.Fprintf(w, "Query: %s\n", result.Query)
	fmt.Fprintf(w, "Filters: %s\n", result.Filters)
	writeResults(w, "Filtered", result.Filtered)
	writeResults(w, "Unfiltered", result.Unfiltered)
}

func writeResults(w io.Writer, label string, docs []core.IndexedDocument) {
	fmt.Fprintf(w, "%s results (%d):\n", label, len(docs))
	for _, doc := range docs {
		fmt.Fprintf(w, "  - %s: %s [%s %s %s]\n",
			doc.ID, doc.Title, doc.Metadata.Service, doc.Metadata.Version, doc.Metadata.DocType)
	}
}

// explainMonitor collects per-document decisions of a filtered search.
type explainMonitor struct {
	lines []string
}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func (m *explainMonitor) Start(_ string, _ search.Filters) { m.lines = m.lines[:0] }

func (m *explainMonitor) Rejected(doc *core.IndexedDocument, reason string) {
	m.lines = append(m.lines, fmt.Sprintf("  %s: rejected (%s)", doc.ID, reason))
}

func (m *explainMonitor) Matched(doc *core.IndexedDocument) {
	m.lines = append(m.lines, fmt.Sprintf("  %s: matched", doc.ID))
}

func (m *explainMonitor) Finish(_ []core.IndexedDocument) {}

func (m *explainMonitor) write(w io.Writer, indexed int) {
	fmt.Fprintf(w, "Explain (%d documents indexed):\n", indexed)
	for _, line := range m.lines {
		fmt.Fprintln(w, line)
	}
}

// monitorOrNil keeps a nil *explainMonitor from becoming a non-nil interface.
func monitorOrNil(m *explainMonitor) search.SearchMonitor {
	if m == nil {
		return nil
	}
	return m
}

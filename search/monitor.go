package search

import "github.com/poiesic/metadex/core"

// Rejection reasons reported to a SearchMonitor.
const (
	ReasonContent = "content"
	ReasonService = "service"
	ReasonVersion = "version"
	ReasonDocType = "doc_type"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to see why each document was kept or dropped.
type SearchMonitor interface {
	Start(query string, filters Filters)
	Rejected(doc *core.IndexedDocument, reason string)
	Matched(doc *core.IndexedDocument)
	Finish(results []core.IndexedDocument)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Filters)                 {}
func (n *noopMonitor) Rejected(_ *core.IndexedDocument, _ string) {}
func (n *noopMonitor) Matched(_ *core.IndexedDocument)            {}
func (n *noopMonitor) Finish(_ []core.IndexedDocument)            {}

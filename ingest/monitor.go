package ingest

import (
	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/index"
)

// Monitor observes pipeline progress. Implementations must be safe for
// concurrent use; DocumentDone and DocumentFailed are called from worker
// goroutines.
type Monitor interface {
	// Start is called once per run with the documents selected for ingestion.
	Start(topic string, documents []core.DocumentRef)

	// DocumentDone is called after a document was extracted and chunked.
	DocumentDone(doc core.DocumentRef, chunks int)

	// DocumentFailed is called when a document could not be processed. The
	// run continues with the remaining documents.
	DocumentFailed(doc core.DocumentRef, err error)

	// Finish is called once after synchronization with the final summary.
	Finish(summary index.Summary)
}

// noopMonitor is the default Monitor.
type noopMonitor struct{}

func (noopMonitor) Start(string, []core.DocumentRef)       {}
func (noopMonitor) DocumentDone(core.DocumentRef, int)     {}
func (noopMonitor) DocumentFailed(core.DocumentRef, error) {}
func (noopMonitor) Finish(index.Summary)                   {}

package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/index"
)

// progressMonitor reports ingestion progress to a writer, typically
// os.Stderr. It implements ingest.Monitor.
type progressMonitor struct {
	writer    io.Writer
	total     int
	done      int
	failed    int
	startTime time.Time
	mu        sync.Mutex
}

func newProgressMonitor(writer io.Writer) *progressMonitor {
	return &progressMonitor{writer: writer}
}

func (p *progressMonitor) Start(topic string, documents []core.DocumentRef) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = len(documents)
	p.done = 0
	p.failed = 0
	p.startTime = time.Now()
	fmt.Fprintf(p.writer, "Ingesting %d documents from topic %q\n", p.total, topic)
}

func (p *progressMonitor) DocumentDone(doc core.DocumentRef, chunks int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	fmt.Fprintf(p.writer, "[%d/%d] %s: %d chunks\n", p.done+p.failed, p.total, doc.Key(), chunks)
}

func (p *progressMonitor) DocumentFailed(doc core.DocumentRef, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failed++
	fmt.Fprintf(p.writer, "[%d/%d] %s: FAILED: %v\n", p.done+p.failed, p.total, doc.Key(), err)
}

func (p *progressMonitor) Finish(summary index.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.writer, "Done in %s: %d added, %d unchanged, %d removed (%d documents failed)\n",
		elapsed.Round(time.Millisecond), summary.NumAdded, summary.NumSkipped, summary.NumDeleted, p.failed)
}

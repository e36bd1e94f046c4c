package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/index"
)

func TestProgressMonitor(t *testing.T) {
	var buf bytes.Buffer
	monitor := newProgressMonitor(&buf)

	docs := []core.DocumentRef{
		{Topic: "physics", Filename: "a.pdf"},
		{Topic: "physics", Filename: "b.pdf"},
	}

	monitor.Start("physics", docs)
	monitor.DocumentDone(docs[0], 7)
	monitor.DocumentFailed(docs[1], errors.New("unreadable"))
	monitor.Finish(index.Summary{NumAdded: 7, NumSkipped: 0, NumDeleted: 2})

	out := buf.String()
	assert.Contains(t, out, `Ingesting 2 documents from topic "physics"`)
	assert.Contains(t, out, "[1/2] physics/documents/a.pdf: 7 chunks")
	assert.Contains(t, out, "[2/2] physics/documents/b.pdf: FAILED: unreadable")
	assert.Contains(t, out, "7 added, 0 unchanged, 2 removed (1 documents failed)")
}

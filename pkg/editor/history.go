package editor

import (
	"github.com/calley/roadline/pkg/doc"
)

// DefaultHistoryDepth bounds the undo stack; the oldest snapshot is
// discarded on overflow.
const DefaultHistoryDepth = 50

// Snapshot is one undo entry: a full deep copy of the document, labeled by
// the operation that was about to mutate it.
type Snapshot struct {
	Label string
	Doc   *doc.Document
}

// History is a bounded linear undo stack of document snapshots. There is
// no redo.
type History struct {
	entries []Snapshot
	depth   int
}

// NewHistory creates a history bounded to the given depth. Non-positive
// depths fall back to DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{depth: depth}
}

// Push appends a snapshot, dropping the oldest entry when full. The caller
// passes a clone; History never copies.
func (h *History) Push(label string, d *doc.Document) {
	if len(h.entries) >= h.depth {
		h.entries = h.entries[len(h.entries)-h.depth+1:]
	}
	h.entries = append(h.entries, Snapshot{Label: label, Doc: d})
}

// Pop removes and returns the most recent snapshot. ok is false when the
// stack is empty.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	s := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Package txn implements the transaction accumulator the layout tree
// pushes geometry through. Tree operations never apply geometry when
// handed a transaction; the owner that opened the batch commits it once
// the whole operation is assembled.
package txn

import (
	"fmt"

	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/tree"
	"github.com/panetile/panetile/internal/view"
)

// Batch records geometry assignments in call order. Repeated assignments
// to the same view collapse to the last one, so a view touched by several
// steps of one operation moves exactly once on commit.
type Batch struct {
	order   []view.View
	targets map[view.View]geometry.Rect
}

var _ tree.Transaction = (*Batch)(nil)

func NewBatch() *Batch {
	return &Batch{targets: make(map[view.View]geometry.Rect)}
}

// AddGeometry records a target rectangle for a view.
func (b *Batch) AddGeometry(v view.View, target geometry.Rect) {
	if _, seen := b.targets[v]; !seen {
		b.order = append(b.order, v)
	}
	b.targets[v] = target
}

// Len returns the number of distinct views with pending geometry.
func (b *Batch) Len() int { return len(b.order) }

// Empty reports whether the batch has nothing to commit.
func (b *Batch) Empty() bool { return len(b.order) == 0 }

// Target returns the pending rectangle for a view and whether one is
// recorded.
func (b *Batch) Target(v view.View) (geometry.Rect, bool) {
	r, ok := b.targets[v]
	return r, ok
}

// Commit applies every pending assignment in recording order through the
// views directly and resets the batch. All assignments are attempted; the
// first error is returned.
func (b *Batch) Commit() error {
	return b.CommitWith(func(v view.View, target geometry.Rect) error {
		return v.SetGeometry(target)
	})
}

// CommitWith applies every pending assignment in recording order through
// apply and resets the batch. Owners use this to route assignments back
// through the layout (so resize crossfades can start) instead of the raw
// views.
func (b *Batch) CommitWith(apply func(v view.View, target geometry.Rect) error) error {
	var firstErr error
	for _, v := range b.order {
		if err := apply(v, b.targets[v]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("commit geometry: %w", err)
		}
	}
	b.order = nil
	b.targets = make(map[view.View]geometry.Rect)
	return firstErr
}

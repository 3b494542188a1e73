package registry

import (
	"fmt"
	"sync/atomic"
)

// guard tracks outstanding borrows of the registry: a positive count of
// shared borrows, or -1 for one exclusive borrow.
type guard struct {
	state atomic.Int32
	op    atomic.Pointer[string]
}

const exclusive = -1

func (g *guard) shared(op string) {
	for {
		s := g.state.Load()
		if s == exclusive {
			g.conflict(op)
		}
		if g.state.CompareAndSwap(s, s+1) {
			return
		}
	}
}

func (g *guard) releaseShared() {
	g.state.Add(-1)
}

func (g *guard) exclusive(op string) {
	if !g.state.CompareAndSwap(0, exclusive) {
		g.conflict(op)
	}
	g.op.Store(&op)
}

func (g *guard) releaseExclusive() {
	g.op.Store(nil)
	g.state.Store(0)
}

func (g *guard) conflict(op string) {
	held := "shared borrow"
	if p := g.op.Load(); p != nil {
		held = *p
	}
	panic(fmt.Errorf("%w: %s during %s", ErrBorrowConflict, op, held))
}

package oracle

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_oracle.go -package=mocks . Clock,Authorizer,Payer

import (
	"sync/atomic"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Clock is a monotonically non-decreasing logical time source. The registry
// reads it for timestamps and advances it once per successful mutation.
type Clock interface {
	Now() uint64
	Advance()
}

// Authorizer answers whether a principal is a registered participant.
// Identity registration itself lives outside the core.
type Authorizer interface {
	IsRegistered(p complaint.Principal) bool
}

// Payer performs a value transfer. A returned error aborts the calling
// operation with no state change.
type Payer interface {
	Transfer(amount int64, from, to complaint.Principal) error
}

// LogicalClock is the default Clock: a plain counter standing in for block
// height.
type LogicalClock struct {
	tick atomic.Uint64
}

// NewLogicalClock returns a clock starting at the given height.
func NewLogicalClock(start uint64) *LogicalClock {
	c := &LogicalClock{}
	c.tick.Store(start)
	return c
}

func (c *LogicalClock) Now() uint64 {
	return c.tick.Load()
}

func (c *LogicalClock) Advance() {
	c.tick.Add(1)
}

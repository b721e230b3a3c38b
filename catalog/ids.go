package catalog

import (
	"sync/atomic"
	"time"
)

// Sequence hands out photo IDs. IDs look like creation timestamps in milliseconds but are
// strictly increasing, so two photos stored within the same millisecond never collide.
type Sequence struct {
	last atomic.Int64
	now  func() time.Time
}

func NewSequence() *Sequence {
	return &Sequence{now: time.Now}
}

func (s *Sequence) Next() int64 {
	for {
		last := s.last.Load()
		next := s.now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if s.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Observe makes sure all future IDs are bigger than id
func (s *Sequence) Observe(id int64) {
	for {
		last := s.last.Load()
		if id <= last || s.last.CompareAndSwap(last, id) {
			return
		}
	}
}

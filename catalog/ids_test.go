package catalog

import (
	"testing"
	"time"
)

func TestSequence_SameMillisecond(t *testing.T) {
	frozen := time.UnixMilli(1710000000000)
	s := &Sequence{now: func() time.Time { return frozen }}
	a, b, c := s.Next(), s.Next(), s.Next()
	if a != 1710000000000 || b != a+1 || c != b+1 {
		t.Errorf("got %d, %d, %d", a, b, c)
	}
}

func TestSequence_FollowsClock(t *testing.T) {
	now := time.UnixMilli(1000)
	s := &Sequence{now: func() time.Time { return now }}
	if got := s.Next(); got != 1000 {
		t.Fatalf("Next() = %d", got)
	}
	now = time.UnixMilli(5000)
	if got := s.Next(); got != 5000 {
		t.Errorf("Next() = %d, want 5000", got)
	}
}

func TestSequence_Observe(t *testing.T) {
	s := &Sequence{now: func() time.Time { return time.UnixMilli(10) }}
	s.Observe(100)
	s.Observe(50) // lower values are ignored
	if got := s.Next(); got != 101 {
		t.Errorf("Next() = %d, want 101", got)
	}
}

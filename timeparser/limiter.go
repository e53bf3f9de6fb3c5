package timeparser

import "sync/atomic"

// DefaultWarningLimit is the number of parse failures a Parser logs before
// it goes quiet.
const DefaultWarningLimit = 100

// warningLimiter caps the number of logged warnings. It throttles log
// volume only and never changes a parse result.
type warningLimiter struct {
	limit int64
	count atomic.Int64
}

func newWarningLimiter(limit int) *warningLimiter {
	return &warningLimiter{limit: int64(limit)}
}

// next reserves a warning slot. It returns the 1-based number of the
// warning and whether it may be logged.
func (l *warningLimiter) next() (int64, bool) {
	if l.count.Load() >= l.limit {
		return l.limit, false
	}
	n := l.count.Add(1)
	return n, n <= l.limit
}

// logged returns how many warnings were let through.
func (l *warningLimiter) logged() int64 {
	return min(l.count.Load(), l.limit)
}

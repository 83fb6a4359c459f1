package timesync

import (
	"fmt"
	"math"
)

// Offset is the result of one measurement. Positive OffsetMs means the
// local clock is behind the server.
type Offset struct {
	OffsetMs int64
	RTTMs    int64
}

// Compute derives clock offset and round-trip delay from a query
// result. Every addition and subtraction is guarded, corrupted
// timestamps must surface as an error instead of wrapping.
func Compute(q *QueryResult) (o Offset, err error) {
	sum, ok := addInt64(q.LocalSendMs, q.LocalRecvMs)
	if !ok {
		return o, fmt.Errorf("%w: %d+%d", ErrOverflow, q.LocalSendMs, q.LocalRecvMs)
	}
	avgLocalMs := sum / 2

	o.OffsetMs, ok = subInt64(q.RemoteMs, avgLocalMs)
	if !ok {
		return o, fmt.Errorf("%w: %d-%d", ErrOverflow, q.RemoteMs, avgLocalMs)
	}
	o.RTTMs, ok = subInt64(q.LocalRecvMs, q.LocalSendMs)
	if !ok {
		return o, fmt.Errorf("%w: %d-%d", ErrOverflow, q.LocalRecvMs, q.LocalSendMs)
	}
	return o, nil
}

func addInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

func subInt64(a, b int64) (int64, bool) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, false
	}
	return a - b, true
}

func absInt64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

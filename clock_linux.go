package timesync

import (
	"time"

	"golang.org/x/sys/unix"
)

func (sysClock) Set(ms int64) error {
	ts := unix.NsecToTimespec(ms * int64(time.Millisecond))
	return unix.ClockSettime(unix.CLOCK_REALTIME, &ts)
}

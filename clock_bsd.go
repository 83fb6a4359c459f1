//go:build darwin || freebsd || netbsd || openbsd

package timesync

import (
	"time"

	"golang.org/x/sys/unix"
)

func (sysClock) Set(ms int64) error {
	tv := unix.NsecToTimeval(ms * int64(time.Millisecond))
	return unix.Settimeofday(&tv)
}

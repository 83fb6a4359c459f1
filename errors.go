package timesync

import "errors"

// Transport failures. All of them count as one failed attempt and are
// eligible for retry, network failure is only reported after the last
// attempt.
var (
	ErrResolution  = errors.New("server name resolution failed")
	ErrSend        = errors.New("udp exchange failed")
	ErrTimeout     = errors.New("no reply before timeout")
	ErrShortPacket = errors.New("reply shorter than 48 octets")
)

// Parser failures, one per rejection point.
var (
	ErrInvalidMode      = errors.New("reply mode is not server")
	ErrInvalidStratum   = errors.New("reply stratum is zero")
	ErrInvalidVersion   = errors.New("reply version out of range")
	ErrInvalidTimestamp = errors.New("transmit timestamp predates unix epoch")
)

// ErrOverflow marks timestamp arithmetic that would wrap int64.
var ErrOverflow = errors.New("timestamp arithmetic overflow")

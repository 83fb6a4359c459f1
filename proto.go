package timesync

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// PacketSize is the fixed on-wire size of an SNTP packet, both directions.
	PacketSize = 48

	nanoPerSec = 1e9

	// seconds between the NTP epoch (1900-01-01) and the unix epoch (1970-01-01)
	ntpToUnixSec = 2208988800
)

const (
	ModeReserved uint8 = iota
	ModeSymmetricActive
	ModeSymmetricPassive
	ModeClient
	ModeServer
	ModeBroadcast
	ModeControlMessage
	ModeReservedPrivate
)

const (
	LiVnMode = iota
	Stratum
	Poll
	ClockPrecision
)

const (
	ReferenceTimeStamp = iota*8 + 16
	OriginTimeStamp
	ReceiveTimeStamp
	TransmitTimeStamp
)

const (
	NoLeap uint8 = iota
	LeapIns
	LeapDel
	NotSync
)

var ntpEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

func SetLi(m []byte, li uint8) {
	m[0] = (m[0] & 0x3f) | li<<6
}

func SetMode(m []byte, mode uint8) {
	m[0] = (m[0] & 0xf8) | mode
}

func GetMode(m []byte) uint8 {
	return m[0] &^ 0xf8
}

func SetVersion(m []byte, v uint8) {
	m[0] = (m[0] & 0xc7) | v<<3
}

func GetVersion(m []byte) uint8 {
	return m[0] >> 3 & 0x07
}

func SetUint8(m []byte, index int, value uint8) {
	m[index] = value
}

func SetUint32(m []byte, index int, value uint32) {
	binary.BigEndian.PutUint32(m[index:], value)
}

func SetUint64(m []byte, index int, value uint64) {
	binary.BigEndian.PutUint64(m[index:], value)
}

func toNtpTime(t time.Time) uint64 {
	nsec := uint64(t.Sub(ntpEpoch))
	sec := nsec / nanoPerSec
	frac := (nsec - sec*nanoPerSec) << 32 / nanoPerSec
	return uint64(sec<<32 | frac)
}

// BuildRequest returns a fresh 48-octet client request: LI=0, VN=4,
// Mode=client, everything else zero.
func BuildRequest() []byte {
	m := make([]byte, PacketSize)
	SetLi(m, NoLeap)
	SetVersion(m, 4)
	SetMode(m, ModeClient)
	return m
}

// ParsePacket validates a server reply and extracts the transmit
// timestamp as milliseconds since the unix epoch. Rejection points are
// checked in order: length, mode, stratum, version, timestamp range.
func ParsePacket(m []byte) (remoteMs int64, err error) {
	if len(m) < PacketSize {
		return 0, fmt.Errorf("%w: %d", ErrShortPacket, len(m))
	}
	if GetMode(m) != ModeServer {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, GetMode(m))
	}
	if m[Stratum] == 0 {
		return 0, ErrInvalidStratum
	}
	if v := GetVersion(m); v < 1 || v > 4 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	sec := binary.BigEndian.Uint32(m[TransmitTimeStamp:])
	frac := binary.BigEndian.Uint32(m[TransmitTimeStamp+4:])
	if sec < ntpToUnixSec {
		return 0, fmt.Errorf("%w: sec=%d", ErrInvalidTimestamp, sec)
	}
	// both fit easily in int64, no overflow up to 1<<32-1
	remoteMs = (int64(sec)-ntpToUnixSec)*1000 + int64(frac)*1000>>32
	return remoteMs, nil
}

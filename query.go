package timesync

import (
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// QueryResult is one successful exchange, all values are milliseconds
// since the unix epoch.
type QueryResult struct {
	LocalSendMs int64
	LocalRecvMs int64
	RemoteMs    int64
}

// Query runs a single SNTP exchange against server and parses the
// reply. The server may carry an explicit ":port", otherwise 123 is
// assumed. The socket is closed on every exit path.
func Query(server string, timeout time.Duration) (*QueryResult, error) {
	host, port, err := net.SplitHostPort(server)
	if err != nil {
		host, port = server, "123"
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResolution, host, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s: empty answer", ErrResolution, host)
	}
	raddr := net.JoinHostPort(ips[0].String(), port)
	log.Debugf("%s resolved to %s", host, raddr)

	conn, err := net.Dial("udp", raddr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrSend, raddr, err)
	}
	defer conn.Close()

	req := BuildRequest()
	sendMs := time.Now().UnixMilli()
	if _, err = conn.Write(req); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", ErrSend, raddr, err)
	}
	if err = conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("%w: deadline: %v", ErrSend, err)
	}

	reply := make([]byte, PacketSize)
	n, err := conn.Read(reply)
	recvMs := time.Now().UnixMilli()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, raddr, timeout)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrSend, raddr, err)
	}
	if n < PacketSize {
		return nil, fmt.Errorf("%w: %d from %s", ErrShortPacket, n, raddr)
	}

	remoteMs, err := ParsePacket(reply[:n])
	if err != nil {
		return nil, err
	}
	log.Debugf("reply from %s: send=%d recv=%d remote=%d",
		raddr, sendMs, recvMs, remoteMs)
	return &QueryResult{
		LocalSendMs: sendMs,
		LocalRecvMs: recvMs,
		RemoteMs:    remoteMs,
	}, nil
}

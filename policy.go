package timesync

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	skipThresholdMs = 500
	maxRTTMs        = 10000
	minYear         = 2025
	maxYear         = 2200
)

// Decision is the terminal outcome of one run.
type Decision uint8

const (
	DecisionSkip Decision = iota
	DecisionReject
	DecisionApply
	DecisionDeny
	DecisionNoop
)

func (d Decision) String() string {
	switch d {
	case DecisionSkip:
		return "skip"
	case DecisionReject:
		return "reject"
	case DecisionApply:
		return "apply"
	case DecisionDeny:
		return "deny"
	case DecisionNoop:
		return "noop"
	}
	return "unknown"
}

// Outcome couples a decision with its process exit code.
type Outcome struct {
	Decision Decision
	Code     int
	Reason   string
}

// SystemClock is the privileged capability that actually moves the
// wall clock. The real implementation is per-OS, tests inject fakes.
type SystemClock interface {
	// Privileged reports whether the process may set the clock.
	Privileged() bool
	// Set steps the wall clock to ms milliseconds since the unix epoch.
	Set(ms int64) error
}

// decide applies the sanity checks in order and, when everything holds,
// commits the adjustment. The applied time is remote + rtt/2: the
// transmit timestamp is half a round trip old by the time it is read.
func decide(cfg *Config, clk SystemClock, o Offset, remoteMs int64) Outcome {
	if o.RTTMs < 0 || o.RTTMs > maxRTTMs {
		log.Errorf("invalid roundtrip %dms", o.RTTMs)
		return Outcome{DecisionReject, 1, "invalid roundtrip"}
	}
	if absInt64(o.OffsetMs) < skipThresholdMs {
		log.Infof("offset %dms below threshold, clock left alone", o.OffsetMs)
		return Outcome{DecisionSkip, 0, "delta below threshold"}
	}
	year := time.UnixMilli(remoteMs).UTC().Year()
	if year < minYear || year > maxYear {
		log.Errorf("implausible remote year %d", year)
		return Outcome{DecisionReject, 1, "implausible year"}
	}

	newMs := remoteMs + o.RTTMs/2
	if cfg.TestOnly {
		log.Infof("test mode: would step clock by %dms to %s",
			o.OffsetMs, time.UnixMilli(newMs).Format(time.RFC3339))
		return Outcome{DecisionNoop, 0, "test mode"}
	}
	if !clk.Privileged() {
		log.Error("not privileged to set the clock")
		return Outcome{DecisionDeny, 10, "insufficient privilege"}
	}
	if err := clk.Set(newMs); err != nil {
		log.Errorf("set clock: %s", err)
		return Outcome{DecisionReject, 10, "set clock failed"}
	}
	log.Infof("clock stepped by %dms, rtt %dms", o.OffsetMs, o.RTTMs)
	return Outcome{DecisionApply, 0, "applied"}
}

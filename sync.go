package timesync

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const retryPause = 200 * time.Millisecond

// SyncMgr drives the query-validate-decide pipeline for one process
// invocation.
type SyncMgr struct {
	cfg   *Config
	clk   SystemClock
	query func(server string, timeout time.Duration) (*QueryResult, error)
	stat  *statistic
}

func NewSyncMgr(cfg *Config, clk SystemClock) *SyncMgr {
	s := &SyncMgr{
		cfg:   cfg,
		clk:   clk,
		query: Query,
	}
	if cfg.Metric != "" {
		s.stat = newStatistic(cfg)
	}
	return s
}

// Run attempts the pipeline up to cfg.Retries times and returns the
// process exit code. Transport and parse failures burn the attempt and
// are retried after a short pause; policy outcomes are terminal and
// never retried.
func (s *SyncMgr) Run() int {
	timeout := time.Duration(s.cfg.TimeoutMs) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= s.cfg.Retries; attempt++ {
		if attempt > 1 {
			time.Sleep(retryPause)
			log.Debugf("attempt %d of %d", attempt, s.cfg.Retries)
		}
		for _, server := range s.cfg.Servers {
			q, err := s.query(server, timeout)
			if err != nil {
				log.Warnf("query %s: %s", server, err)
				lastErr = err
				continue
			}
			o, err := Compute(q)
			if err != nil {
				log.Warnf("compute %s: %s", server, err)
				lastErr = err
				continue
			}
			log.Debugf("%s: offset=%dms rtt=%dms", server, o.OffsetMs, o.RTTMs)

			out := decide(s.cfg, s.clk, o, q.RemoteMs)
			if s.stat != nil {
				s.stat.report(o, out)
			}
			return out.Code
		}
	}

	log.Errorf("no usable reply after %d attempts: %s", s.cfg.Retries, lastErr)
	return 2
}

package timesync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	log "github.com/sirupsen/logrus"
)

// statistic pushes per-run measurements to a Pushgateway. A one-shot
// process has no scrape window, so the gateway keeps the last run
// visible for scraping.
type statistic struct {
	offsetGauge prometheus.Gauge
	rttGauge    prometheus.Gauge
	runCounter  *prometheus.CounterVec
	pusher      *push.Pusher
}

func newStatistic(cfg *Config) *statistic {
	reg := prometheus.NewRegistry()

	offsetGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "timesync",
		Subsystem: "stat",
		Name:      "offset_ms",
		Help:      "The measured offset to the server",
	})
	reg.MustRegister(offsetGauge)

	rttGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "timesync",
		Subsystem: "stat",
		Name:      "rtt_ms",
		Help:      "The round trip delay of the exchange",
	})
	reg.MustRegister(rttGauge)

	runCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timesync",
		Subsystem: "runs",
		Name:      "total",
		Help:      "The total number of runs by decision",
	}, []string{"decision"})
	reg.MustRegister(runCounter)

	return &statistic{
		offsetGauge: offsetGauge,
		rttGauge:    rttGauge,
		runCounter:  runCounter,
		pusher:      push.New(cfg.Metric, "timesync").Gatherer(reg),
	}
}

func (s *statistic) report(o Offset, out Outcome) {
	s.offsetGauge.Set(float64(o.OffsetMs))
	s.rttGauge.Set(float64(o.RTTMs))
	s.runCounter.WithLabelValues(out.Decision.String()).Inc()
	if err := s.pusher.Push(); err != nil {
		log.Warnf("metric push failed: %s", err)
	}
}

//go:build linux || darwin || freebsd || netbsd || openbsd

package timesync

import (
	"log/syslog"

	log "github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// SetupLogging configures the process-wide logger from the config.
// Every line goes to stderr with a severity tag and timestamp, and is
// mirrored to syslog when asked for.
func SetupLogging(cfg *Config) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	if cfg.UseSyslog {
		hook, err := lsyslog.NewSyslogHook("", "",
			syslog.LOG_INFO|syslog.LOG_DAEMON, "timesync")
		if err != nil {
			log.Warnf("syslog unavailable, ignored: %s", err)
			return
		}
		log.AddHook(hook)
	}
}

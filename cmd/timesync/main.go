package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	timesync "github.com/tsupplis/timesync-mini"
)

var (
	cfgFile   string
	timeoutMs int
	retries   int
	testOnly  bool
	verbose   bool
	useSyslog bool
	metric    string
)

var rootCmd = &cobra.Command{
	Use:   "timesync [flags] [ntp-server ...]",
	Short: "one-shot SNTP client that corrects the system clock",
	Long: `timesync queries an NTP server once, computes the local clock offset
and steps the system clock when the offset is large and the reply
passes plausibility checks. Exit codes: 0 synced or nothing to do,
1 implausible reply, 2 network failure, 10 privilege or clock failure.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(cmd, args))
	},
}

func init() {
	fl := rootCmd.Flags()
	fl.StringVarP(&cfgFile, "config", "c", "", "yaml config file")
	fl.IntVarP(&timeoutMs, "timeout", "t", timesync.DefaultTimeoutMs, "timeout in milliseconds (max: 6000)")
	fl.IntVarP(&retries, "retries", "r", timesync.DefaultRetries, "number of retries (max: 10)")
	fl.BoolVarP(&testOnly, "test", "n", false, "run in test mode (no action)")
	fl.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	fl.BoolVarP(&useSyslog, "syslog", "s", false, "enable syslog logging")
	fl.StringVarP(&metric, "metrics", "m", "", "pushgateway url for run metrics")
}

func run(cmd *cobra.Command, args []string) int {
	cfg := timesync.DefaultConfig()
	if cfgFile != "" {
		var err error
		if cfg, err = timesync.NewConfigFromFile(cfgFile); err != nil {
			log.Errorf("config %s: %s", cfgFile, err)
			return 1
		}
	}

	// flags beat the config file
	fl := cmd.Flags()
	if fl.Changed("timeout") {
		cfg.TimeoutMs = timeoutMs
	}
	if fl.Changed("retries") {
		cfg.Retries = retries
	}
	if fl.Changed("test") {
		cfg.TestOnly = testOnly
	}
	if fl.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if fl.Changed("syslog") {
		cfg.UseSyslog = useSyslog
	}
	if fl.Changed("metrics") {
		cfg.Metric = metric
	}
	if len(args) > 0 {
		cfg.Servers = args
	}
	cfg.Normalize()

	timesync.SetupLogging(cfg)
	log.Debugf("config: %+v", cfg)

	return timesync.NewSyncMgr(cfg, timesync.NewSystemClock()).Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

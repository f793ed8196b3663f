package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultTimeoutSeconds = 10
	defaultThreads        = 5
	defaultDelayMillis    = 0
	defaultOutputFormat   = "table"
	defaultTemplateFile   = "templates/services.json"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan ScanRuntimeConfig
}

// ScanRuntimeConfig consolidates flag-driven settings for the scan command.
type ScanRuntimeConfig struct {
	Target       string
	Service      string
	SkipChecks   bool
	Headers      string
	DelayMillis  int
	TimeoutSecs  int
	Output       string
	WebhookURL   string
	Threads      int
	TemplateFile string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanRuntimeConfig{
			Service:      "*",
			TimeoutSecs:  defaultTimeoutSeconds,
			DelayMillis:  defaultDelayMillis,
			Output:       defaultOutputFormat,
			Threads:      defaultThreads,
			TemplateFile: defaultTemplateFile,
		},
	}
}

// applyConfigDefaults merges config file defaults into the runtime config
// when the user did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	if viper.IsSet("defaults.threads") {
		applyIntDefault(scanCmd.Flags(), "threads", viper.GetInt("defaults.threads"), func(v int) {
			cliConfig.Scan.Threads = v
		})
	}
	if viper.IsSet("defaults.timeout_secs") {
		applyIntDefault(scanCmd.Flags(), "timeout", viper.GetInt("defaults.timeout_secs"), func(v int) {
			cliConfig.Scan.TimeoutSecs = v
		})
	}
	if viper.IsSet("defaults.delay_ms") {
		applyIntDefault(scanCmd.Flags(), "delay", viper.GetInt("defaults.delay_ms"), func(v int) {
			cliConfig.Scan.DelayMillis = v
		})
	}
	if viper.IsSet("defaults.output") {
		applyStringDefault(scanCmd.Flags(), "output", viper.GetString("defaults.output"), func(v string) {
			cliConfig.Scan.Output = v
		})
	}
	if viper.IsSet("defaults.templates") {
		applyStringDefault(scanCmd.Flags(), "templates", viper.GetString("defaults.templates"), func(v string) {
			cliConfig.Scan.TemplateFile = v
		})
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name string, value string, setter func(string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/misconfigmate/misconfigmate/internal/scanner"
	"github.com/misconfigmate/misconfigmate/internal/templates"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Probe third-party service instances across permutations of a target name",
	Long: `Generate hostname permutations for the target (staging, dev, internal, ...),
expand them against the service template library, and probe each candidate
endpoint. A service counts as discovered when a detection fingerprint appears
in the response body; it counts as misconfigured when the status code and a
vulnerability fingerprint also match.

Only passive evidence matching is performed. No DNS enumeration, crawling, or
exploitation takes place.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := cliConfig.Scan

	if !validOutputFormat(cfg.Output) {
		return fmt.Errorf("invalid output format %q (must be table, json, jsonl, csv, or webhook)", cfg.Output)
	}
	if cfg.Output == "webhook" && cfg.WebhookURL == "" {
		return fmt.Errorf("--webhook is required when --output=webhook")
	}

	loaded, err := templates.Load(cfg.TemplateFile)
	if err != nil {
		return err
	}
	selected := templates.Filter(loaded, cfg.Service)
	if len(selected) == 0 {
		return &NoTemplatesError{Selector: cfg.Service}
	}
	logger.Debugf("loaded %d service template(s)", len(selected))

	target := scanner.NormalizeTarget(cfg.Target)
	permutations := scanner.Permutations(target)
	tasks := scanner.ExpandTasks(selected, permutations)
	logger.Debugf("generated %d URLs to test across %d permutations", len(tasks), len(permutations))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	interrupted := make(chan string, 1)
	go func() {
		select {
		case sig := <-sigCh:
			interrupted <- sig.String()
			cancel()
		case <-ctx.Done():
		}
	}()

	progress := newProgressPrinter(len(tasks), target)
	progress.Start()

	prober := scanner.NewProber(
		target,
		parseHeaders(cfg.Headers),
		time.Duration(cfg.TimeoutSecs)*time.Second,
		cfg.SkipChecks,
		logger,
	)
	runner := &scanner.Runner{
		Threads:  cfg.Threads,
		Delay:    time.Duration(cfg.DelayMillis) * time.Millisecond,
		Logger:   logger,
		Progress: progress.Update,
	}

	results, stats := runner.Run(ctx, tasks, prober)
	progress.Stop()

	select {
	case sig := <-interrupted:
		return &InterruptedError{Signal: sig}
	default:
	}
	if ctx.Err() != nil {
		return &InterruptedError{}
	}

	return emitResults(cfg, target, results, stats)
}

func validOutputFormat(format string) bool {
	switch format {
	case "table", "json", "jsonl", "csv", "webhook":
		return true
	}
	return false
}

// parseHeaders parses the ";;"-separated header flag into a map. Entries
// without a colon are skipped.
func parseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	if raw == "" {
		return headers
	}
	for _, entry := range strings.Split(raw, ";;") {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}

func init() {
	flags := scanCmd.Flags()
	flags.StringVar(&cliConfig.Scan.Target, "target", "", "target domain or company name (required)")
	flags.StringVar(&cliConfig.Scan.Service, "service", cliConfig.Scan.Service, "template id or service slug to scan (* for all)")
	flags.BoolVar(&cliConfig.Scan.SkipChecks, "skip-checks", false, "only detect services, skip misconfiguration checks")
	flags.StringVar(&cliConfig.Scan.Headers, "headers", "", `global request headers (format: "Key: Value;; Key2: Value2")`)
	flags.IntVar(&cliConfig.Scan.DelayMillis, "delay", cliConfig.Scan.DelayMillis, "delay between requests in milliseconds")
	flags.IntVar(&cliConfig.Scan.TimeoutSecs, "timeout", cliConfig.Scan.TimeoutSecs, "request timeout in seconds")
	flags.StringVarP(&cliConfig.Scan.Output, "output", "o", cliConfig.Scan.Output, "output format (table, json, jsonl, csv, webhook)")
	flags.StringVar(&cliConfig.Scan.WebhookURL, "webhook", "", "webhook URL for sending results (required with --output=webhook)")
	flags.IntVar(&cliConfig.Scan.Threads, "threads", cliConfig.Scan.Threads, "worker pool size")
	flags.StringVar(&cliConfig.Scan.TemplateFile, "templates", cliConfig.Scan.TemplateFile, "service template library file")

	_ = scanCmd.MarkFlagRequired("target")
}

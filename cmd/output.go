package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/misconfigmate/misconfigmate/internal/scanner"
)

const webhookTimeout = 15 * time.Second

// webhookPayload is the body POSTed to the configured webhook URL.
type webhookPayload struct {
	Timestamp time.Time        `json:"timestamp"`
	Target    string           `json:"target"`
	Findings  []scanner.Result `json:"findings"`
}

// emitResults hands the raw result list to the selected sink. Only the table
// view deduplicates; every machine-readable format emits all raw results.
func emitResults(cfg ScanRuntimeConfig, target string, results []scanner.Result, stats scanner.Stats) error {
	if cfg.Output == "table" {
		renderTable(os.Stdout, results, stats)
		return nil
	}

	if len(results) == 0 {
		logger.Debugf("no results to emit for target %s", target)
		return nil
	}

	switch cfg.Output {
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(data))
	case "jsonl":
		for _, r := range results {
			line, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(line))
		}
	case "csv":
		if err := writeCSV(os.Stdout, results); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	case "webhook":
		// Delivery failure is reported, not fatal: the scan itself succeeded.
		if err := sendWebhook(cfg.WebhookURL, target, results); err != nil {
			fmt.Println(colorWarn(fmt.Sprintf("Error sending to webhook: %v", err)))
			return nil
		}
		fmt.Println(colorSuccess("Results sent to webhook successfully"))
	}
	return nil
}

func renderTable(w io.Writer, results []scanner.Result, stats scanner.Stats) {
	unique := scanner.Dedupe(results)

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorSuccess("Scan Results:"))

	if len(unique) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SERVICE\tURL\tSTATUS\tDESCRIPTION")
		for _, r := range unique {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				r.Service, r.URL, formatFindingStatus(r.Exists, r.Vulnerable), r.Description)
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\nFound %d unique results.\n", len(unique))
	fmt.Fprintf(w, "Total discovered endpoints: %d\n", stats.Discovered)
	if stats.Errors > 0 {
		fmt.Fprintf(w, "Encountered %d errors during scanning.\n", stats.Errors)
	}
}

var csvHeader = []string{
	"timestamp", "target", "url", "exists", "vulnerable",
	"service", "description", "reproduction_steps", "references", "status_code",
}

func writeCSV(w io.Writer, results []scanner.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Target,
			r.URL,
			strconv.FormatBool(r.Exists),
			strconv.FormatBool(r.Vulnerable),
			r.Service,
			r.Description,
			strings.Join(r.ReproductionSteps, "; "),
			strings.Join(r.References, "; "),
			strconv.Itoa(r.StatusCode),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sendWebhook(url, target string, results []scanner.Result) error {
	payload := webhookPayload{
		Timestamp: time.Now().UTC(),
		Target:    target,
		Findings:  results,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	client := &http.Client{Timeout: webhookTimeout}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

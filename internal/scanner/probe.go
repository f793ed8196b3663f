package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Response bodies are read up to this many bytes for fingerprint matching.
const maxBodyBytes = 2 << 20

var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
}

// Prober issues a single probe request per task and classifies the response
// against the task's template fingerprints.
type Prober struct {
	Target     string
	Headers    map[string]string
	SkipChecks bool
	Logger     *zap.SugaredLogger

	client *http.Client
}

// NewProber builds a prober for one scan run. TLS certificate verification is
// deliberately disabled: candidate hostnames routinely sit behind wildcard or
// mismatched certificates and reachability matters more than trust here.
func NewProber(target string, headers map[string]string, timeout time.Duration, skipChecks bool, logger *zap.SugaredLogger) *Prober {
	merged := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		merged[k] = v
	}
	if _, ok := merged["User-Agent"]; !ok {
		merged["User-Agent"] = browserUserAgents[rand.Intn(len(browserUserAgents))]
	}

	return &Prober{
		Target:     target,
		Headers:    merged,
		SkipChecks: skipChecks,
		Logger:     logger,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- recon tradeoff, see NewProber doc.
			},
		},
	}
}

// Probe runs one task. It returns (nil, nil) when the response matches no
// fingerprint, and (nil, err) on any transport-level failure; a single failed
// task never aborts the scan.
func (p *Prober) Probe(ctx context.Context, task Task) (*Result, error) {
	tpl := task.Template

	req, err := http.NewRequestWithContext(ctx, tpl.Request.Method, task.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", task.URL, err)
	}

	// Template headers override global headers on key conflict. That
	// precedence is deliberate: a template knows better than the operator
	// what a specific service endpoint requires.
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range tpl.Request.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", task.URL, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", task.URL, err)
	}
	body := string(bodyBytes)

	exists := containsAny(body, tpl.Response.DetectionFingerprints)

	// Vulnerability matching is only meaningful on an instance that exists,
	// and only when the caller did not opt out of checks.
	vulnerable := false
	if exists && !p.SkipChecks {
		vulnerable = tpl.Response.StatusCodes.Contains(resp.StatusCode) &&
			containsAny(body, tpl.Response.Fingerprints)
	}

	if !exists && !vulnerable {
		return nil, nil
	}

	if p.Logger != nil {
		p.Logger.Debugw("service detected",
			"url", task.URL,
			"service", tpl.Metadata.ServiceName,
			"status", resp.StatusCode,
			"vulnerable", vulnerable,
		)
	}

	return &Result{
		Timestamp:         time.Now().UTC(),
		Target:            p.Target,
		URL:               task.URL,
		Exists:            exists,
		Vulnerable:        vulnerable,
		Service:           tpl.Metadata.ServiceName,
		Description:       tpl.Metadata.Description,
		ReproductionSteps: tpl.Metadata.ReproductionSteps,
		References:        tpl.Metadata.References,
		StatusCode:        resp.StatusCode,
	}, nil
}

func containsAny(body string, fingerprints []string) bool {
	for _, fp := range fingerprints {
		if strings.Contains(body, fp) {
			return true
		}
	}
	return false
}

package scanner

import "time"

// Result is one confirmed finding: a service instance that exists on a
// candidate hostname and, when vulnerability checking is on, whether it
// exhibits the template's insecure-default misconfiguration.
type Result struct {
	Timestamp         time.Time `json:"timestamp"`
	Target            string    `json:"target"`
	URL               string    `json:"url"`
	Exists            bool      `json:"exists"`
	Vulnerable        bool      `json:"vulnerable"`
	Service           string    `json:"service"`
	Description       string    `json:"description"`
	ReproductionSteps []string  `json:"reproduction_steps"`
	References        []string  `json:"references"`
	StatusCode        int       `json:"status_code"`
}

// Dedupe collapses results that share a (service, url) identity, keeping the
// first occurrence and the original order. Only the human-facing table uses
// this; machine-readable sinks always emit the raw list.
func Dedupe(results []Result) []Result {
	type key struct {
		service string
		url     string
	}
	seen := make(map[key]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		k := key{r.Service, r.URL}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

package templates

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Template is one service probe definition loaded from the template library.
// Templates are read once at startup and never mutated afterwards.
type Template struct {
	ID       int      `json:"id"`
	Request  Request  `json:"request"`
	Response Response `json:"response"`
	Metadata Metadata `json:"metadata"`
}

// Request describes how to reach a candidate service instance. BaseURL
// contains the {TARGET} placeholder that is substituted with a hostname
// permutation at expansion time.
type Request struct {
	Method  string            `json:"method"`
	BaseURL string            `json:"baseURL"`
	Paths   []string          `json:"path"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Response describes how to interpret what comes back. DetectionFingerprints
// establish that the service exists at all; Fingerprints combined with a
// matching status code establish the misconfiguration.
type Response struct {
	StatusCodes           StatusCodes `json:"statusCode"`
	DetectionFingerprints []string    `json:"detectionFingerprints"`
	Fingerprints          []string    `json:"fingerprints"`
}

// Metadata carries the human-facing description of a template.
type Metadata struct {
	Service           string   `json:"service"`
	ServiceName       string   `json:"serviceName"`
	Description       string   `json:"description"`
	ReproductionSteps []string `json:"reproductionSteps,omitempty"`
	References        []string `json:"references,omitempty"`
}

// StatusCodes accepts either a single integer or a list of integers in JSON.
// Both forms are common in community template libraries.
type StatusCodes []int

func (s *StatusCodes) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StatusCodes{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("statusCode must be an integer or an array of integers")
	}
	*s = StatusCodes(many)
	return nil
}

func (s StatusCodes) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]int(s))
}

// Contains reports whether code is one of the acceptable status codes.
func (s StatusCodes) Contains(code int) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

// Validate checks the fields a scan cannot run without. Errors name the
// offending template so a broken library entry is easy to locate.
func (t *Template) Validate() error {
	label := t.Metadata.ServiceName
	if label == "" {
		label = fmt.Sprintf("id %d", t.ID)
	}
	if t.Request.Method == "" {
		return fmt.Errorf("template %s: request.method is required", label)
	}
	if t.Request.BaseURL == "" {
		return fmt.Errorf("template %s: request.baseURL is required", label)
	}
	if !strings.Contains(t.Request.BaseURL, Placeholder) {
		return fmt.Errorf("template %s: request.baseURL must contain the %s placeholder", label, Placeholder)
	}
	if len(t.Request.Paths) == 0 {
		return fmt.Errorf("template %s: request.path must list at least one path", label)
	}
	if len(t.Response.DetectionFingerprints) == 0 {
		return fmt.Errorf("template %s: response.detectionFingerprints must not be empty", label)
	}
	if len(t.Response.StatusCodes) == 0 {
		return fmt.Errorf("template %s: response.statusCode is required", label)
	}
	if t.Metadata.ServiceName == "" {
		return fmt.Errorf("template id %d: metadata.serviceName is required", t.ID)
	}
	return nil
}

// Placeholder is the substitution marker inside baseURL patterns.
const Placeholder = "{TARGET}"

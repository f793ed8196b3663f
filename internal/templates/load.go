package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Load reads and validates a template library file. Every template is
// validated eagerly so that a malformed entry fails the run before any
// probing begins.
func Load(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file %s: %w", path, err)
	}
	var ts []Template
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("parse template file %s: %w", path, err)
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("template file %s contains no templates", path)
	}
	for i := range ts {
		if err := ts[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid template in %s: %w", path, err)
		}
	}
	return ts, nil
}

// Filter narrows a template set by a selector. "*" keeps everything;
// otherwise the selector must equal a template's numeric id or its
// metadata.service slug.
func Filter(ts []Template, selector string) []Template {
	if selector == "*" || selector == "" {
		return ts
	}
	out := make([]Template, 0, len(ts))
	for _, t := range ts {
		if strconv.Itoa(t.ID) == selector || t.Metadata.Service == selector {
			out = append(out, t)
		}
	}
	return out
}

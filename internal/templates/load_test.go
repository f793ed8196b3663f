package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLibrary = `[
  {
    "id": 1,
    "request": {"method": "GET", "baseURL": "https://{TARGET}.example.com", "path": ["/login"]},
    "response": {"statusCode": 200, "detectionFingerprints": ["Example"], "fingerprints": ["signup"]},
    "metadata": {"service": "example", "serviceName": "Example Service", "description": "d"}
  },
  {
    "id": 2,
    "request": {"method": "GET", "baseURL": "https://{TARGET}.other.io", "path": ["/"]},
    "response": {"statusCode": [200, 302], "detectionFingerprints": ["Other"], "fingerprints": ["open"]},
    "metadata": {"service": "other", "serviceName": "Other Service", "description": "d"}
  }
]`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ts, err := Load(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ts) != 2 {
		t.Fatalf("Load() returned %d templates, want 2", len(ts))
	}
	if ts[0].Metadata.ServiceName != "Example Service" {
		t.Errorf("first template = %q, want Example Service", ts[0].Metadata.ServiceName)
	}
	if len(ts[1].Response.StatusCodes) != 2 {
		t.Errorf("second template status codes = %v, want two entries", ts[1].Response.StatusCodes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load() on a missing file should fail")
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeLibrary(t, `{"not": "an array"`))
	if err == nil {
		t.Fatal("Load() on malformed JSON should fail")
	}
	if !strings.Contains(err.Error(), "parse template file") {
		t.Errorf("error %q should mention parsing", err)
	}
}

func TestLoadEmptyLibrary(t *testing.T) {
	if _, err := Load(writeLibrary(t, `[]`)); err == nil {
		t.Fatal("Load() on an empty library should fail")
	}
}

func TestLoadInvalidTemplate(t *testing.T) {
	broken := strings.Replace(sampleLibrary, `"baseURL": "https://{TARGET}.example.com"`, `"baseURL": "https://static.example.com"`, 1)
	_, err := Load(writeLibrary(t, broken))
	if err == nil {
		t.Fatal("Load() should reject a template without the placeholder")
	}
	if !strings.Contains(err.Error(), "Example Service") {
		t.Errorf("error %q should name the offending template", err)
	}
}

func TestBundledLibraryLoads(t *testing.T) {
	ts, err := Load("../../templates/services.json")
	if err != nil {
		t.Fatalf("bundled template library must load cleanly: %v", err)
	}
	if len(ts) == 0 {
		t.Fatal("bundled template library is empty")
	}
	seen := make(map[int]struct{}, len(ts))
	for _, tpl := range ts {
		if _, dup := seen[tpl.ID]; dup {
			t.Errorf("duplicate template id %d", tpl.ID)
		}
		seen[tpl.ID] = struct{}{}
	}
}

func TestFilter(t *testing.T) {
	ts, err := Load(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{"wildcard", "*", 2},
		{"empty selector keeps all", "", 2},
		{"by numeric id", "2", 1},
		{"by service slug", "example", 1},
		{"no match", "nope", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(ts, tt.selector)
			if len(got) != tt.want {
				t.Errorf("Filter(%q) returned %d templates, want %d", tt.selector, len(got), tt.want)
			}
		})
	}

	byID := Filter(ts, "2")
	if len(byID) == 1 && byID[0].Metadata.Service != "other" {
		t.Errorf("Filter by id selected %q, want other", byID[0].Metadata.Service)
	}
}

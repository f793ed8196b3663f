package scanner

import "testing"

func TestDedupe(t *testing.T) {
	results := []Result{
		{Service: "svcA", URL: "url1", StatusCode: 200},
		{Service: "svcA", URL: "url1", StatusCode: 403},
		{Service: "svcB", URL: "url1"},
	}

	unique := Dedupe(results)
	if len(unique) != 2 {
		t.Fatalf("Dedupe returned %d results, want 2", len(unique))
	}
	if unique[0].Service != "svcA" || unique[1].Service != "svcB" {
		t.Errorf("Dedupe order = [%s, %s], want first-seen order [svcA, svcB]", unique[0].Service, unique[1].Service)
	}
	if unique[0].StatusCode != 200 {
		t.Errorf("first occurrence must win, got status %d", unique[0].StatusCode)
	}

	// Raw input is untouched.
	if len(results) != 3 {
		t.Errorf("input slice mutated, has %d entries", len(results))
	}
}

func TestDedupeDistinctURLs(t *testing.T) {
	results := []Result{
		{Service: "svcA", URL: "url1"},
		{Service: "svcA", URL: "url2"},
	}
	if unique := Dedupe(results); len(unique) != 2 {
		t.Errorf("distinct URLs for the same service must both survive, got %d", len(unique))
	}
}

func TestDedupeEmpty(t *testing.T) {
	if unique := Dedupe(nil); len(unique) != 0 {
		t.Errorf("Dedupe(nil) = %d entries, want 0", len(unique))
	}
}

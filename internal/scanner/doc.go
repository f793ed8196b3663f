// Package scanner implements the misconfiguration detection engine.
//
// Architecture overview:
//
//   - Permutations derives candidate hostnames from a base name using fixed
//     suffix/prefix vocabularies (staging, dev, internal, ...).
//   - ExpandTasks cross-products permutations with the template library into
//     concrete probe tasks, normalizing schemes and path joins.
//   - Prober issues one HTTP request per task and classifies the response
//     against the template's detection and vulnerability fingerprints.
//   - Runner drives the task list through a fixed-size worker pool with an
//     optional inter-request delay, keeping atomic discovered/error tallies
//     that a progress reporter may read concurrently.
//   - Dedupe collapses duplicate (service, url) findings for table display;
//     machine-readable sinks consume the raw result list untouched.
//
// The engine never resolves DNS ahead of probing and never follows up on a
// finding beyond passive fingerprint matching.
package scanner

package scanner

import "strings"

// Naming conventions commonly used for environment-specific instances of
// third-party services.
var permutationSuffixes = []string{
	"dev", "staging", "stage", "test", "prod", "qa",
	"internal", "corp", "team",
	"app", "api", "admin",
	"us", "eu", "asia",
}

var permutationPrefixes = []string{
	"dev",
	"staging",
	"test",
	"qa",
	"admin",
	"internal",
}

// NormalizeTarget canonicalizes a caller-supplied base name.
func NormalizeTarget(target string) string {
	return strings.ToLower(strings.TrimSpace(target))
}

// Permutations derives candidate hostnames from a base name. The base itself
// is always included; each suffix contributes "base-suffix" and "base.suffix",
// each prefix contributes "prefixbase" and "prefix.base". The result is
// duplicate-free and deterministic for a given base.
func Permutations(base string) []string {
	out := make([]string, 0, 1+2*len(permutationSuffixes)+2*len(permutationPrefixes))
	seen := make(map[string]struct{}, cap(out))
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	add(base)
	for _, suffix := range permutationSuffixes {
		add(base + "-" + suffix)
		add(base + "." + suffix)
	}
	for _, prefix := range permutationPrefixes {
		add(prefix + base)
		add(prefix + "." + base)
	}
	return out
}

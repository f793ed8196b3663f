package scanner

import (
	"strings"

	"github.com/misconfigmate/misconfigmate/internal/templates"
)

// Task pairs one concrete probe URL with the template that produced it.
type Task struct {
	URL      string
	Template *templates.Template
}

// ExpandTasks cross-products every template, permutation, and template path
// into the full probe task list. The list is materialized up front because
// its size drives progress batching in the runner.
func ExpandTasks(ts []templates.Template, permutations []string) []Task {
	tasks := make([]Task, 0, len(ts)*len(permutations))
	for i := range ts {
		t := &ts[i]
		for _, host := range permutations {
			base := strings.ReplaceAll(t.Request.BaseURL, templates.Placeholder, host)
			if !hasScheme(base) {
				base = "https://" + base
			}
			for _, path := range t.Request.Paths {
				tasks = append(tasks, Task{
					URL:      joinURL(base, path),
					Template: t,
				})
			}
		}
	}
	return tasks
}

func hasScheme(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// joinURL joins a base URL and a path with exactly one slash between them,
// whatever trailing/leading slashes either side carries.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

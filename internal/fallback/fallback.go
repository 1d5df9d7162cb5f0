// Package fallback builds a deterministic commit message from the staged
// file list when no provider produced one.
package fallback

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/doanvanminh/commitai/internal/gitx"
)

const (
	maxSubject   = 72
	maxBodyFiles = 10
)

// Generate renders a Conventional Commits message from the staged stats
// alone. Same input, same output; no randomness and no model involved.
func Generate(stats []gitx.ChangeStat) string {
	if len(stats) == 0 {
		return "chore: update"
	}

	typ, verb := classify(stats)
	scope := commonScope(stats)

	head := render(typ, scope, verb+" "+target(stats))
	if utf8.RuneCountInString(head) > maxSubject && len(stats) == 1 {
		head = render(typ, scope, verb+" "+path.Base(stats[0].Path))
	}
	if utf8.RuneCountInString(head) > maxSubject {
		r := []rune(head)
		head = string(r[:maxSubject-3]) + "..."
	}

	if len(stats) == 1 {
		return head
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n\n")
	for i, s := range stats {
		if i == maxBodyFiles {
			fmt.Fprintf(&b, "- and %d more\n", len(stats)-maxBodyFiles)
			break
		}
		fmt.Fprintf(&b, "- %s %s\n", s.Status, s.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

func render(typ, scope, subject string) string {
	if scope != "" {
		return typ + "(" + scope + "): " + subject
	}
	return typ + ": " + subject
}

func target(stats []gitx.ChangeStat) string {
	if len(stats) == 1 {
		return stats[0].Path
	}
	return fmt.Sprintf("%d files", len(stats))
}

func classify(stats []gitx.ChangeStat) (typ, verb string) {
	allDocs, allTests, allDeps, allCI := true, true, true, true
	allAdded, allDeleted := true, true
	for _, s := range stats {
		if !isDoc(s.Path) {
			allDocs = false
		}
		if !isTest(s.Path) {
			allTests = false
		}
		if !isDepManifest(s.Path) {
			allDeps = false
		}
		if !isCI(s.Path) {
			allCI = false
		}
		if s.Status != "A" {
			allAdded = false
		}
		if s.Status != "D" {
			allDeleted = false
		}
	}

	verb = "update"
	if allAdded {
		verb = "add"
	}
	if allDeleted {
		verb = "remove"
	}

	switch {
	case allDocs:
		typ = "docs"
	case allTests:
		typ = "test"
	case allDeps:
		typ = "build"
	case allCI:
		typ = "ci"
	case allAdded:
		typ = "feat"
	default:
		typ = "chore"
	}
	return typ, verb
}

// commonScope is the last segment of the deepest directory shared by every
// path, empty when any file sits at the repository root.
func commonScope(stats []gitx.ChangeStat) string {
	first := path.Dir(stats[0].Path)
	if first == "." {
		return ""
	}
	segs := strings.Split(first, "/")
	for _, s := range stats[1:] {
		d := path.Dir(s.Path)
		if d == "." {
			return ""
		}
		cur := strings.Split(d, "/")
		n := 0
		for n < len(segs) && n < len(cur) && segs[n] == cur[n] {
			n++
		}
		segs = segs[:n]
		if len(segs) == 0 {
			return ""
		}
	}
	return segs[len(segs)-1]
}

func isDoc(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".rst", ".txt", ".adoc":
		return true
	}
	top := strings.SplitN(p, "/", 2)[0]
	return top == "docs" || top == "doc"
}

func isTest(p string) bool {
	base := path.Base(p)
	if strings.HasSuffix(base, "_test.go") || strings.HasPrefix(base, "test_") {
		return true
	}
	for _, seg := range strings.Split(path.Dir(p), "/") {
		switch seg {
		case "test", "tests", "testdata", "__tests__":
			return true
		}
	}
	return false
}

var depManifests = map[string]bool{
	"go.mod":            true,
	"go.sum":            true,
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"requirements.txt":  true,
	"pyproject.toml":    true,
	"poetry.lock":       true,
	"cargo.toml":        true,
	"cargo.lock":        true,
	"gemfile":           true,
	"gemfile.lock":      true,
	"composer.json":     true,
	"composer.lock":     true,
}

func isDepManifest(p string) bool {
	return depManifests[strings.ToLower(path.Base(p))]
}

func isCI(p string) bool {
	if strings.HasPrefix(p, ".github/workflows/") ||
		strings.HasPrefix(p, ".circleci/") ||
		strings.HasPrefix(p, ".gitlab/") {
		return true
	}
	switch strings.ToLower(path.Base(p)) {
	case ".gitlab-ci.yml", ".travis.yml", "jenkinsfile", "azure-pipelines.yml":
		return true
	}
	return false
}

package fallback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/doanvanminh/commitai/internal/gitx"
)

func TestGenerateClassification(t *testing.T) {
	tests := []struct {
		name  string
		stats []gitx.ChangeStat
		want  string
	}{
		{
			name:  "empty",
			stats: nil,
			want:  "chore: update",
		},
		{
			name:  "single doc",
			stats: []gitx.ChangeStat{{Path: "README.md", Status: "M"}},
			want:  "docs: update README.md",
		},
		{
			name:  "docs deleted keep docs type",
			stats: []gitx.ChangeStat{{Path: "docs/old.md", Status: "D"}},
			want:  "docs(docs): remove docs/old.md",
		},
		{
			name:  "test only",
			stats: []gitx.ChangeStat{{Path: "internal/app/run_test.go", Status: "M"}},
			want:  "test(app): update internal/app/run_test.go",
		},
		{
			name: "dependency manifests",
			stats: []gitx.ChangeStat{
				{Path: "go.mod", Status: "M"},
				{Path: "go.sum", Status: "M"},
			},
			want: "build: update 2 files\n\n- M go.mod\n- M go.sum",
		},
		{
			name:  "ci workflow",
			stats: []gitx.ChangeStat{{Path: ".github/workflows/ci.yml", Status: "M"}},
			want:  "ci(workflows): update .github/workflows/ci.yml",
		},
		{
			name:  "all added",
			stats: []gitx.ChangeStat{{Path: "internal/fallback/fallback.go", Status: "A"}},
			want:  "feat(fallback): add internal/fallback/fallback.go",
		},
		{
			name: "all deleted",
			stats: []gitx.ChangeStat{
				{Path: "old/thing.go", Status: "D"},
				{Path: "old/other.go", Status: "D"},
			},
			want: "chore(old): remove 2 files\n\n- D old/thing.go\n- D old/other.go",
		},
		{
			name: "mixed statuses",
			stats: []gitx.ChangeStat{
				{Path: "a.go", Status: "M"},
				{Path: "b.md", Status: "A"},
			},
			want: "chore: update 2 files\n\n- M a.go\n- A b.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.stats); got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	stats := []gitx.ChangeStat{
		{Path: "internal/app/run.go", Status: "M"},
		{Path: "internal/app/hook.go", Status: "A"},
	}
	first := Generate(stats)
	for i := 0; i < 5; i++ {
		if got := Generate(stats); got != first {
			t.Fatalf("Generate not deterministic: %q vs %q", got, first)
		}
	}
}

func TestGenerateScopeFromSharedDir(t *testing.T) {
	stats := []gitx.ChangeStat{
		{Path: "internal/app/run.go", Status: "M"},
		{Path: "internal/config/load.go", Status: "M"},
	}
	got := Generate(stats)
	if !strings.HasPrefix(got, "chore(internal): ") {
		t.Errorf("Generate() = %q, want chore(internal) scope", got)
	}

	rootMix := []gitx.ChangeStat{
		{Path: "main.go", Status: "M"},
		{Path: "internal/app/run.go", Status: "M"},
	}
	if got := Generate(rootMix); strings.Contains(strings.SplitN(got, "\n", 2)[0], "(") {
		t.Errorf("root-level file should drop the scope, got %q", got)
	}
}

func TestGenerateSubjectCap(t *testing.T) {
	long := strings.Repeat("deeply/", 15) + "buried_file.go"
	got := Generate([]gitx.ChangeStat{{Path: long, Status: "M"}})

	head := strings.SplitN(got, "\n", 2)[0]
	if len(head) > 72 {
		t.Errorf("subject is %d chars, want <= 72: %q", len(head), head)
	}
	if !strings.Contains(head, "buried_file.go") {
		t.Errorf("subject should fall back to the base name, got %q", head)
	}
}

func TestGenerateBodyFileCap(t *testing.T) {
	var stats []gitx.ChangeStat
	for i := 0; i < 12; i++ {
		stats = append(stats, gitx.ChangeStat{
			Path:   fmt.Sprintf("internal/pkg/f%02d.go", i),
			Status: "M",
		})
	}

	got := Generate(stats)
	lines := strings.Split(got, "\n")
	if lines[0] != "chore(pkg): update 12 files" {
		t.Errorf("head = %q", lines[0])
	}
	if len(lines) != 13 {
		t.Fatalf("message has %d lines, want head + blank + 10 files + overflow", len(lines))
	}
	if lines[len(lines)-1] != "- and 2 more" {
		t.Errorf("last line = %q, want overflow marker", lines[len(lines)-1])
	}
	if lines[2] != "- M internal/pkg/f00.go" {
		t.Errorf("first body line = %q", lines[2])
	}
}

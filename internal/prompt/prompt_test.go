package prompt

import (
	"strings"
	"testing"
)

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "text block",
			input: "```text\ncommit message\n```",
			want:  "commit message",
		},
		{
			name:  "markdown block",
			input: "```markdown\ncommit message\n```",
			want:  "commit message",
		},
		{
			name:  "no lang block",
			input: "```\ncommit message\n```",
			want:  "commit message",
		},
		{
			name:  "surrounding whitespace",
			input: "  ```\ncommit message\n```  ",
			want:  "commit message",
		},
		{
			name:  "multiline message",
			input: "```\nfeat: add something\n\nBody line.\n```",
			want:  "feat: add something\n\nBody line.",
		},
		{
			name:  "prose only",
			input: "  Just some text  ",
			want:  "Just some text",
		},
		{
			name:  "prose before block",
			input: "Here is the code:\n```\nfeat: x\n```",
			want:  "feat: x",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMessage(tt.input); got != tt.want {
				t.Errorf("CleanMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSections(t *testing.T) {
	d := Data{
		RepositoryName:    "commitai",
		BranchName:        "main",
		RecentUserCommits: []string{"fix: earlier thing"},
		RecentRepoCommits: []string{"feat: repo thing"},
		Changes: []Change{
			{
				Path:         "internal/app/run.go",
				Diff:         "diff --git a/internal/app/run.go b/internal/app/run.go\n+added line\n",
				OriginalCode: "<attachment id=\"run.go\" isSummarized=\"false\">\n 1: package app\n</attachment>\n",
			},
		},
		CustomInstructions: "Always mention the ticket system is not used.",
		Conventional:       true,
	}

	out := Build(d)

	for _, want := range []string{
		"<repository-context>",
		"Repository name: commitai",
		"Branch name: main",
		"<user-commits>",
		"- fix: earlier thing",
		"<recent-commits>",
		"- feat: repo thing",
		"<changes>",
		"<original-code>",
		"<code-changes>",
		"```diff",
		"+added line",
		"<reminder>",
		"```text",
		"<custom-instructions>",
		"Always mention the ticket system is not used.",
		"Conventional Commits",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Build output missing %q", want)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	out := Build(Data{
		RepositoryName: "r",
		BranchName:     "b",
		Changes:        []Change{{Path: "a.go", Diff: "+x\n"}},
	})

	for _, absent := range []string{
		"<user-commits>",
		"<recent-commits>",
		"<original-code>",
		"<custom-instructions>",
		"Conventional Commits",
	} {
		if strings.Contains(out, absent) {
			t.Errorf("Build output should not contain %q", absent)
		}
	}
	if !strings.Contains(out, "<code-changes>") {
		t.Error("Build output missing <code-changes>")
	}
}

func TestBuildAttachmentNumbersLines(t *testing.T) {
	out := BuildAttachment("/repo", "pkg/x.txt", "alpha\nbeta\ngamma", false)

	for _, want := range []string{
		"<attachment id=\"x.txt\" isSummarized=\"false\">",
		"// filepath: /repo/pkg/x.txt",
		" 1: alpha",
		" 2: beta",
		" 3: gamma",
		"</attachment>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("attachment missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildAttachmentSummarizesGo(t *testing.T) {
	src := strings.Join([]string{
		"package demo",
		"",
		"import (",
		"\t\"fmt\"",
		")",
		"",
		"const answer = 42",
		"",
		"func Hello(name string) string {",
		"\treturn fmt.Sprintf(\"hi %s\", name)",
		"}",
	}, "\n")

	out := BuildAttachment("/repo", "demo/demo.go", src, true)

	for _, want := range []string{
		"isSummarized=\"true\"",
		"package demo",
		"import (",
		"const answer = 42",
		"func Hello(name string) string {…}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summarized attachment missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "return fmt.Sprintf") {
		t.Error("summarized attachment should not keep function bodies")
	}
}

func TestSummarizeGoMultilineSignature(t *testing.T) {
	lines := []string{
		"package demo",
		"",
		"func Long(",
		"\ta int,",
		"\tb int,",
		") int {",
		"\treturn a + b",
		"}",
	}

	kept := summarizeGo(lines)
	if got := kept[3]; got != "func Long( {…}" {
		t.Errorf("collapsed signature = %q", got)
	}
	if _, ok := kept[7]; ok {
		t.Error("function body line should be dropped")
	}
}

func TestSummarizeHeadPlusLastKeepsEnds(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "line"
	}
	lines[39] = "last"

	kept := summarizeHeadPlusLast(lines, 25)
	if len(kept) != 26 {
		t.Errorf("kept %d lines, want 26", len(kept))
	}
	if kept[40] != "last" {
		t.Errorf("kept[40] = %q, want last line", kept[40])
	}
	if _, ok := kept[30]; ok {
		t.Error("middle lines should be dropped")
	}
}

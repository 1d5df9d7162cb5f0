package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// StagedChange is one staged file together with its staged diff.
type StagedChange struct {
	Path string
	Diff string
}

// ChangeStat is one staged file with its git status letter (A, M, D, R, ...).
type ChangeStat struct {
	Path   string
	Status string
}

func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v failed: %v\n%s", args, err, stderr.String())
	}
	return stdout.String(), nil
}

func CurrentBranch(ctx context.Context, repoRoot string) (string, error) {
	out, err := Git(ctx, repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func GitConfig(ctx context.Context, repoRoot, key string) (string, error) {
	out, err := Git(ctx, repoRoot, "config", "--get", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func RecentCommits(ctx context.Context, repoRoot string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	out, err := Git(ctx, repoRoot, "log", fmt.Sprintf("-n%d", n), "--pretty=format:%s")
	if err != nil {
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

func RecentCommitsByAuthor(ctx context.Context, repoRoot string, n int, author string) ([]string, error) {
	if n <= 0 || strings.TrimSpace(author) == "" {
		return nil, nil
	}
	out, err := Git(ctx, repoRoot, "log", fmt.Sprintf("-n%d", n), fmt.Sprintf("--author=%s", author), "--pretty=format:%s")
	if err != nil {
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

func StagedChanges(ctx context.Context, repoRoot string, maxFiles int) ([]StagedChange, error) {
	if maxFiles <= 0 {
		maxFiles = 10
	}
	filesOut, err := Git(ctx, repoRoot, "diff", "--staged", "--name-only")
	if err != nil {
		return nil, err
	}
	files := splitNonEmptyLines(filesOut)
	if len(files) > maxFiles {
		files = files[:maxFiles]
	}

	var out []StagedChange
	for _, f := range files {
		diff, _ := Git(ctx, repoRoot, "diff", "--staged", "--", f)
		out = append(out, StagedChange{Path: f, Diff: diff})
	}
	return out, nil
}

// StagedStats lists every staged path with its status letter, no diffs.
func StagedStats(ctx context.Context, repoRoot string) ([]ChangeStat, error) {
	out, err := Git(ctx, repoRoot, "diff", "--staged", "--name-status")
	if err != nil {
		return nil, err
	}
	return parseNameStatus(out), nil
}

// parseNameStatus reads `git diff --name-status` output. Renames and copies
// carry a similarity score (R100) and two paths; the score is dropped and the
// destination path kept.
func parseNameStatus(out string) []ChangeStat {
	var stats []ChangeStat
	for _, ln := range splitNonEmptyLines(out) {
		fields := strings.Fields(ln)
		if len(fields) < 2 {
			continue
		}
		status := fields[0]
		if len(status) > 1 {
			status = status[:1]
		}
		stats = append(stats, ChangeStat{Path: fields[len(fields)-1], Status: status})
	}
	return stats
}

func OriginalFileAtHEAD(ctx context.Context, repoRoot, relPath string) (string, error) {
	spec := "HEAD:" + relPath
	out, err := Git(ctx, repoRoot, "show", spec)
	if err != nil {
		return "", err
	}
	return out, nil
}

func ReadWorkingTreeFile(repoRoot, relPath string) (string, error) {
	p := filepath.Join(repoRoot, relPath)
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Commit(ctx context.Context, repoRoot, message string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := Git(ctx, repoRoot, "commit", "-m", msg)
	return err
}

func splitNonEmptyLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

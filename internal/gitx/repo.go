package gitx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func ResolveRepoRoot(ctx context.Context, repoArg string) (string, error) {
	if strings.TrimSpace(repoArg) != "" {
		p, err := filepath.Abs(repoArg)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(p); err != nil {
			return "", err
		}
		// If the argument points at a subdir, normalize by asking git.
		root, err := Git(ctx, p, "rev-parse", "--show-toplevel")
		if err == nil {
			return strings.TrimSpace(root), nil
		}
		return p, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := Git(ctx, cwd, "rev-parse", "--show-toplevel")
	if err == nil {
		return strings.TrimSpace(root), nil
	}

	// Walk up looking for .git; covers the case where git itself is
	// unavailable from cwd but a repo exists above it.
	cur := cwd
	for {
		if exists(filepath.Join(cur, ".git")) {
			root, err := Git(ctx, cur, "rev-parse", "--show-toplevel")
			if err == nil {
				return strings.TrimSpace(root), nil
			}
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return "", errors.New("not inside a git repository, use -repo /path/to/repo")
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func RepoNameFromRoot(repoRoot string) string {
	return filepath.Base(repoRoot)
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doanvanminh/commitai/internal/gitx"
)

const hookScript = `#!/bin/sh
# commitai prepare-commit-msg hook

COMMIT_MSG_FILE=$1
COMMIT_SOURCE=$2

# A message passed with -m or -F wins, skip in that case.
if [ "$COMMIT_SOURCE" = "message" ]; then
  exit 0
fi

# Reattach stdin to the terminal so the interactive UI works inside the hook.
if [ -t 0 ]; then
    exec < /dev/tty
fi

echo "commitai is generating a commit message..."
"%s" -hook "$COMMIT_MSG_FILE" < /dev/tty > /dev/tty
`

// InstallHook writes the prepare-commit-msg hook pointing at the current
// executable.
func InstallHook(ctx context.Context, repoArg string) error {
	repoRoot, err := gitx.ResolveRepoRoot(ctx, repoArg)
	if err != nil {
		return err
	}

	gitDir := filepath.Join(repoRoot, ".git")
	fi, err := os.Stat(gitDir)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%s is not a directory, cannot install hooks here", gitDir)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
	if _, err := os.Stat(hookPath); err == nil {
		return fmt.Errorf("hook %s already exists. Please remove it first", hookPath)
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "commitai"
	} else {
		exe, _ = filepath.Abs(exe)
	}

	script := fmt.Sprintf(hookScript, exe)
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	fmt.Printf("✅ Hook installed to %s\n", hookPath)
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"

	"github.com/doanvanminh/commitai/internal/config"
	"github.com/doanvanminh/commitai/internal/fallback"
	"github.com/doanvanminh/commitai/internal/gitx"
	"github.com/doanvanminh/commitai/internal/prompt"
	"github.com/doanvanminh/commitai/internal/provider"
	"github.com/doanvanminh/commitai/internal/vault"
)

// Config carries the per-invocation inputs: the command, its positional
// arguments, and the loaded settings after flag overrides.
type Config struct {
	Command string
	Args    []string

	RepoArg    string
	ConfigPath string

	DumpOutPath string
	HookFile    string

	Settings *config.Config
}

// Token budget for a single file's diff inside the prompt.
const maxDiffTokens = 6000

var errNoStagedChanges = errors.New("no staged changes. Run: git add -A")

func Run(ctx context.Context, cfg Config, log zerolog.Logger) error {
	switch cfg.Command {
	case "init":
		path, err := config.Init()
		if err != nil {
			return err
		}
		fmt.Printf("Config file: %s\n", path)
		return nil
	case "config":
		return runConfig(cfg)
	case "install-hook":
		return InstallHook(ctx, cfg.RepoArg)
	case "keys":
		return runKeys(cfg)
	case "providers":
		return runProviders(cfg, log)
	case "suggest", "dump-prompt":
	default:
		return fmt.Errorf("unknown -cmd=%s (use suggest | dump-prompt | init | config | install-hook | keys | providers)", cfg.Command)
	}

	repoRoot, err := gitx.ResolveRepoRoot(ctx, cfg.RepoArg)
	if err != nil {
		return err
	}

	customInstructions := ""
	if p := strings.TrimSpace(cfg.Settings.InstructionsFile); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read instructions file: %w", err)
		}
		customInstructions = string(b)
	}

	data, err := buildPromptData(ctx, repoRoot, cfg.Settings, customInstructions)
	if err != nil {
		if cfg.HookFile != "" && errors.Is(err, errNoStagedChanges) {
			// Nothing staged, let git fall through to its normal flow.
			return nil
		}
		return err
	}

	promptText := prompt.Build(data)

	if cfg.Command == "dump-prompt" {
		return dumpPrompt(promptText, cfg.DumpOutPath)
	}
	return runSuggest(ctx, cfg, log, repoRoot, promptText)
}

func runSuggest(ctx context.Context, cfg Config, log zerolog.Logger, repoRoot, promptText string) error {
	chain := config.BuildChain(cfg.Settings, vault.New(), log)
	if len(chain) == 0 {
		return errors.New("no usable profiles configured, run -cmd config or edit " + config.ConfigFilePath())
	}

	exec := provider.NewExecutor(provider.NewRegistry(), log)
	opts := provider.Options{
		Temperature: &cfg.Settings.Temperature,
		Transform:   prompt.CleanMessage,
	}

	generate := func() (string, error) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Generating commit message..."
		s.Start()
		res := exec.Run(ctx, chain, promptText, opts)
		s.Stop()

		if res.Success != nil {
			return res.Success.Message, nil
		}

		for _, f := range res.Failures {
			fmt.Fprintln(os.Stderr, f.String())
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		stats, err := gitx.StagedStats(ctx, repoRoot)
		if err != nil {
			return "", fmt.Errorf("every provider failed and staged stats are unavailable: %w", err)
		}
		fmt.Fprintln(os.Stderr, "All providers failed, falling back to a generated message.")
		return fallback.Generate(stats), nil
	}

	return runInteractiveLoop(ctx, repoRoot, generate, cfg.HookFile)
}

func buildPromptData(ctx context.Context, repoRoot string, settings *config.Config, customInstructions string) (prompt.Data, error) {
	repoName := gitx.RepoNameFromRoot(repoRoot)

	branch, _ := gitx.CurrentBranch(ctx, repoRoot)
	userEmail, _ := gitx.GitConfig(ctx, repoRoot, "user.email")

	userCommits, _ := gitx.RecentCommitsByAuthor(ctx, repoRoot, settings.RecentCommits, userEmail)
	repoCommits, _ := gitx.RecentCommits(ctx, repoRoot, settings.RecentCommits)

	maxFiles := settings.MaxFiles
	if maxFiles <= 0 {
		maxFiles = config.DefaultMaxFiles
	}

	// Fetch beyond the limit so ignore filtering can still fill it.
	fetchFiles := maxFiles * 2
	if fetchFiles < 20 {
		fetchFiles = 20
	}
	changes, err := gitx.StagedChanges(ctx, repoRoot, fetchFiles)
	if err != nil {
		return prompt.Data{}, err
	}
	if len(changes) == 0 {
		return prompt.Data{}, errNoStagedChanges
	}

	allIgnores := append([]string{}, defaultIgnores...)
	allIgnores = append(allIgnores, settings.IgnoredFiles...)

	counter := prompt.NewCounter()
	model := activeModel(settings)
	countTokens := func(s string) int { return counter.Count(model, s) }

	filtered := make([]prompt.Change, 0, maxFiles)
	for _, ch := range changes {
		if len(filtered) >= maxFiles {
			break
		}
		if shouldIgnore(ch.Path, allIgnores) {
			continue
		}

		diff := prompt.TrimToBudget(prompt.CapBytes(ch.Diff), maxDiffTokens, countTokens)

		orig, _ := gitx.OriginalFileAtHEAD(ctx, repoRoot, ch.Path)
		if strings.TrimSpace(orig) == "" {
			orig, _ = gitx.ReadWorkingTreeFile(repoRoot, ch.Path)
		}

		attachment := ""
		if strings.TrimSpace(orig) != "" {
			attachment = prompt.BuildAttachment(repoRoot, ch.Path, orig, settings.Summarize)
		}

		filtered = append(filtered, prompt.Change{
			Path:         ch.Path,
			Diff:         diff,
			OriginalCode: attachment,
		})
	}

	if len(filtered) == 0 {
		return prompt.Data{}, fmt.Errorf("all staged files were ignored (checked %d files)", len(changes))
	}

	return prompt.Data{
		RepositoryName:     repoName,
		BranchName:         branch,
		RecentUserCommits:  userCommits,
		RecentRepoCommits:  repoCommits,
		Changes:            filtered,
		CustomInstructions: customInstructions,
		Conventional:       settings.Conventional,
	}, nil
}

// activeModel is the model of the active profile, used only to pick a token
// encoding. An empty model falls back to the default encoding.
func activeModel(settings *config.Config) string {
	if pc, ok := settings.Profiles[settings.Active]; ok {
		return pc.Model
	}
	return ""
}

var defaultIgnores = []string{
	"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"*.map", "*.svg", "*.min.js", "*.min.css",
}

func shouldIgnore(path string, ignores []string) bool {
	base := filepath.Base(path)
	for _, ign := range ignores {
		if ign == base || ign == path {
			return true
		}
		if matched, _ := filepath.Match(ign, base); matched {
			return true
		}
	}
	return false
}

func runInteractiveLoop(ctx context.Context, repoRoot string, generate func() (string, error), hookFile string) error {
	for {
		commitMsg, err := generate()
		if err != nil {
			return err
		}

		for {
			action, err := confirmCommitInteractive(commitMsg)
			if err != nil {
				return err
			}

			switch action {
			case ActionCommit:
				if hookFile != "" {
					// Hook mode writes the message for git, no commit here.
					if err := os.WriteFile(hookFile, []byte(commitMsg), 0644); err != nil {
						return fmt.Errorf("write hook file: %w", err)
					}
					fmt.Println("Message written for the git hook.")
					return nil
				}
				return gitx.Commit(ctx, repoRoot, commitMsg)

			case ActionEdit:
				newMsg, err := editCommitMessageInteractive(commitMsg)
				if err != nil {
					return err
				}
				commitMsg = newMsg
				continue

			case ActionRegenerate:
				fmt.Println("Regenerating...")
				goto NextGeneration

			case ActionCancel:
				fmt.Println("Cancelled.")
				if hookFile != "" {
					return errors.New("commit cancelled by user")
				}
				return nil
			}
		}
	NextGeneration:
	}
}

func dumpPrompt(text, outPath string) error {
	if strings.TrimSpace(outPath) == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}
	return nil
}

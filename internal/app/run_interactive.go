package app

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/doanvanminh/commitai/internal/config"
)

func runConfig(cfg Config) error {
	settings, ok, err := runConfigInteractive(cfg.Settings)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Operation cancelled.")
		return nil
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.ConfigFilePath()
	}
	if err := config.Save(settings, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return nil
}

// runConfigInteractive edits the global settings and then the active
// profile. The second return is false when the user aborted the form.
func runConfigInteractive(in *config.Config) (*config.Config, bool, error) {
	out := *in

	active := out.Active
	logLevel := out.LogLevel
	recentStr := fmt.Sprintf("%d", out.RecentCommits)
	maxFilesStr := fmt.Sprintf("%d", out.MaxFiles)
	tempStr := fmt.Sprintf("%.2f", out.Temperature)
	summarize := out.Summarize
	conventional := out.Conventional
	ignoredStr := strings.Join(out.IgnoredFiles, ", ")
	instructions := out.InstructionsFile

	profileIDs := make([]string, 0, len(out.Profiles))
	for id := range out.Profiles {
		profileIDs = append(profileIDs, id)
	}
	sort.Strings(profileIDs)

	profileOpts := make([]huh.Option[string], 0, len(profileIDs))
	for _, id := range profileIDs {
		pc := out.Profiles[id]
		profileOpts = append(profileOpts, huh.NewOption(fmt.Sprintf("%s (%s, %s)", id, pc.Kind, pc.Model), id))
	}

	levelOpts := make([]huh.Option[string], 0, len(config.ValidLogLevels))
	for _, l := range config.ValidLogLevels {
		levelOpts = append(levelOpts, huh.NewOption(l, l))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("commitai Configuration").
				Description("Update your global settings in "+config.ConfigFilePath()),

			huh.NewSelect[string]().
				Title("Active Profile").
				Description("Tried first, fallbacks follow in order").
				Options(profileOpts...).
				Value(&active),

			huh.NewSelect[string]().
				Title("Log Level").
				Options(levelOpts...).
				Value(&logLevel),

			huh.NewInput().
				Title("Temperature").
				Description("Sampling temperature (0.0 - 2.0)").
				Value(&tempStr).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if v < 0 || v > 2.0 {
						return fmt.Errorf("must be between 0.0 and 2.0")
					}
					return nil
				}),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Recent Commits").
				Description("Number of recent commits to include").
				Value(&recentStr).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),

			huh.NewInput().
				Title("Max Files").
				Description("Max staged files to include").
				Value(&maxFilesStr).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),

			huh.NewConfirm().
				Title("Summarize Attachments").
				Description("Collapse original file content for large files?").
				Value(&summarize),

			huh.NewConfirm().
				Title("Conventional Commits").
				Description("Enforce Conventional Commits format?").
				Value(&conventional),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Ignored Files").
				Description("Glob patterns (comma separated)").
				Value(&ignoredStr),

			huh.NewInput().
				Title("Instructions File").
				Description("Optional file with extra prompt instructions").
				Value(&instructions),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, false, nil
		}
		return nil, false, err
	}

	out.Active = active
	out.LogLevel = logLevel
	if v, err := strconv.Atoi(recentStr); err == nil {
		out.RecentCommits = v
	}
	if v, err := strconv.Atoi(maxFilesStr); err == nil {
		out.MaxFiles = v
	}
	if v, err := strconv.ParseFloat(tempStr, 64); err == nil {
		out.Temperature = v
	}
	out.Summarize = summarize
	out.Conventional = conventional
	out.InstructionsFile = strings.TrimSpace(instructions)

	var ignores []string
	for _, s := range strings.Split(ignoredStr, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			ignores = append(ignores, s)
		}
	}
	out.IgnoredFiles = ignores

	pc, ok, err := runProfileForm(active, out.Profiles[active])
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	profiles := make(map[string]config.ProfileConfig, len(out.Profiles))
	for id, p := range out.Profiles {
		profiles[id] = p
	}
	profiles[active] = pc
	out.Profiles = profiles

	return &out, true, nil
}

func runProfileForm(id string, pc config.ProfileConfig) (config.ProfileConfig, bool, error) {
	model := pc.Model
	baseURL := pc.BaseURL
	timeout := pc.Timeout
	maxRetriesStr := fmt.Sprintf("%d", pc.MaxRetries)
	enabled := pc.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Profile: "+id).
				Description("Settings for the active profile ("+pc.Kind+")"),

			huh.NewInput().
				Title("Model").
				Suggestions([]string{"gpt-4o-mini", "gpt-4o", "claude-sonnet-4-0", "gemini-2.0-flash", "llama3.2"}).
				Value(&model),

			huh.NewInput().
				Title("Base URL").
				Description("Leave empty for the provider default").
				Placeholder("https://api.openai.com or http://localhost:11434").
				Value(&baseURL),

			huh.NewInput().
				Title("Timeout").
				Description("Per-attempt timeout, e.g. 30s").
				Value(&timeout).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Title("Max Retries").
				Description("Extra attempts after the first failure").
				Value(&maxRetriesStr).
				Validate(func(s string) error {
					v, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if v < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Enabled").
				Value(&enabled),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return pc, false, nil
		}
		return pc, false, err
	}

	pc.Model = model
	pc.BaseURL = strings.TrimSpace(baseURL)
	pc.Timeout = strings.TrimSpace(timeout)
	if v, err := strconv.Atoi(maxRetriesStr); err == nil {
		pc.MaxRetries = v
	}
	pc.Enabled = enabled
	return pc, true, nil
}

// Action is the user's choice in the confirmation loop.
type Action int

const (
	ActionCommit Action = iota
	ActionRegenerate
	ActionEdit
	ActionCancel
)

func confirmCommitInteractive(commitMsg string) (Action, error) {
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Generated Commit Message:"))

	fmt.Println(lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		MarginBottom(1).
		Render(strings.TrimSpace(commitMsg)))

	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Commit (Apply)", "commit"),
					huh.NewOption("Regenerate", "regenerate"),
					huh.NewOption("Edit", "edit"),
					huh.NewOption("Cancel", "cancel"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ActionCancel, nil
		}
		return ActionCancel, err
	}

	switch selected {
	case "commit":
		return ActionCommit, nil
	case "edit":
		return ActionEdit, nil
	case "regenerate":
		return ActionRegenerate, nil
	default:
		return ActionCancel, nil
	}
}

func editCommitMessageInteractive(initialMsg string) (string, error) {
	content := initialMsg

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Edit Commit Message").
				Description("Modify the message below").
				Value(&content),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return content, nil
}

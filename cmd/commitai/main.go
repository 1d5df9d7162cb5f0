package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doanvanminh/commitai/internal/app"
	"github.com/doanvanminh/commitai/internal/config"
	"github.com/doanvanminh/commitai/internal/logging"
)

// Set via -ldflags "-X main.version=..." at release time.
var version = "dev"

func main() {
	var (
		cmd          = flag.String("cmd", "suggest", "command: suggest | dump-prompt | init | config | install-hook | keys | providers")
		repoArg      = flag.String("repo", "", "path to the git repository (default: auto-detect)")
		configPath   = flag.String("config", "", "path to the config file")
		model        = flag.String("model", "", "override the active profile's model")
		profile      = flag.String("profile", "", "profile id to try first (overrides active)")
		temp         = flag.Float64("temp", config.DefaultTemperature, "sampling temperature (0.0 - 2.0)")
		recentN      = flag.Int("recent", config.DefaultRecentCommits, "number of recent commits to include")
		maxFiles     = flag.Int("max-files", config.DefaultMaxFiles, "max staged files to include")
		summarize    = flag.Bool("summarize", false, "summarize original file content in the prompt")
		conventional = flag.Bool("conventional", true, "enforce Conventional Commits format")
		instructions = flag.String("instructions", "", "path to a file with extra prompt instructions")
		out          = flag.String("out", "", "output file for dump-prompt")
		hookFile     = flag.String("hook", "", "hook mode: write the message to this file instead of committing")
		logLevel     = flag.String("log-level", "", "log level: trace | debug | info | warn | error")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("commitai " + version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	// Flags beat environment and file, but only when actually set.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "temp":
			if *temp < 0 || *temp > 2 {
				fatal(fmt.Errorf("-temp must be between 0.0 and 2.0"))
			}
			cfg.Temperature = *temp
		case "recent":
			cfg.RecentCommits = *recentN
		case "max-files":
			cfg.MaxFiles = *maxFiles
		case "summarize":
			cfg.Summarize = *summarize
		case "conventional":
			cfg.Conventional = *conventional
		case "instructions":
			cfg.InstructionsFile = *instructions
		case "log-level":
			cfg.LogLevel = *logLevel
		case "profile":
			if _, ok := cfg.Profiles[*profile]; !ok {
				fatal(fmt.Errorf("unknown profile %q", *profile))
			}
			cfg.Active = *profile
		}
	})
	if *model != "" {
		if pc, ok := cfg.Profiles[cfg.Active]; ok {
			pc.Model = *model
			cfg.Profiles[cfg.Active] = pc
		}
	}

	log := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := strings.ToLower(strings.TrimSpace(*cmd))
	if *hookFile != "" {
		command = "suggest"
	}

	err = app.Run(ctx, app.Config{
		Command:     command,
		Args:        flag.Args(),
		RepoArg:     *repoArg,
		ConfigPath:  *configPath,
		DumpOutPath: *out,
		HookFile:    *hookFile,
		Settings:    cfg,
	}, log)
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "commitai: %v\n", err)
	os.Exit(1)
}

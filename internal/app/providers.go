package app

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"

	"github.com/doanvanminh/commitai/internal/config"
	"github.com/doanvanminh/commitai/internal/vault"
)

// runProviders prints the resolved execution order, then any configured
// profiles that did not make it into the chain.
func runProviders(cfg Config, log zerolog.Logger) error {
	chain := config.BuildChain(cfg.Settings, vault.New(), log)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))).
		Headers("#", "ID", "KIND", "MODEL", "ENABLED", "KEY")

	inChain := make(map[string]bool, len(chain))
	for i, p := range chain {
		key := "-"
		if p.APIKey != "" {
			key = "****"
		}
		t.Row(strconv.Itoa(i+1), p.ID, string(p.Kind), p.Model, "yes", key)
		inChain[p.ID] = true
	}

	var rest []string
	for id := range cfg.Settings.Profiles {
		if !inChain[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		pc := cfg.Settings.Profiles[id]
		t.Row("-", id, pc.Kind, pc.Model, "no", "-")
	}

	fmt.Println(t)
	if len(chain) == 0 {
		fmt.Println("No usable profiles. Run -cmd config or -cmd keys set <name>.")
	}
	return nil
}

package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/doanvanminh/commitai/internal/vault"
)

func runKeys(cfg Config) error {
	if len(cfg.Args) == 0 {
		return errors.New("usage: commitai -cmd keys <set|get|delete|list> [name]")
	}

	v := vault.New()

	switch cfg.Args[0] {
	case "list":
		names := make([]string, 0, len(cfg.Settings.Profiles))
		for id := range cfg.Settings.Profiles {
			names = append(names, id)
		}
		sort.Strings(names)

		stored := v.List(names)
		if len(stored) == 0 {
			fmt.Println("No API keys stored")
			return nil
		}
		for _, n := range stored {
			fmt.Printf("  %s: ****\n", n)
		}
		return nil

	case "set":
		name, err := keyName(cfg.Args, "set")
		if err != nil {
			return err
		}
		fmt.Printf("Enter API key for %s: ", name)
		key, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if err := v.Set(name, string(key)); err != nil {
			return fmt.Errorf("store key: %w", err)
		}
		fmt.Printf("Key for %s stored\n", name)
		return nil

	case "get":
		name, err := keyName(cfg.Args, "get")
		if err != nil {
			return err
		}
		key, err := v.Get(name)
		if err != nil {
			return fmt.Errorf("no key for %s: %w", name, err)
		}
		fmt.Println(key)
		return nil

	case "delete":
		name, err := keyName(cfg.Args, "delete")
		if err != nil {
			return err
		}
		if err := v.Delete(name); err != nil {
			return fmt.Errorf("delete key: %w", err)
		}
		fmt.Printf("Key for %s deleted\n", name)
		return nil

	default:
		return fmt.Errorf("unknown keys command: %s", cfg.Args[0])
	}
}

func keyName(args []string, verb string) (string, error) {
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return "", fmt.Errorf("usage: commitai -cmd keys %s <name>", verb)
	}
	return strings.ToLower(strings.TrimSpace(args[1])), nil
}

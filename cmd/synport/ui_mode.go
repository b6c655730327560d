package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting shared by migrate and comments.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "auto":
		return uiAuto, nil
	case "on", "always":
		return uiOn, nil
	case "off", "never":
		return uiOff, nil
	default:
		return uiAuto, fmt.Errorf("--ui: want auto, on or off, got %q", value)
	}
}

// shouldUseTUI resolves auto to the progress UI only for an interactive
// terminal outside CI.
func shouldUseTUI(mode uiMode) bool {
	if mode != uiAuto {
		return mode == uiOn
	}
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout)
}

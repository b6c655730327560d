package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"synport/internal/source"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default synport.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing synport.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	path := filepath.Join(dir, manifestName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("init: %s already exists (use --force to overwrite)", source.DisplayPath(path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("init: failed to stat %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultManifest), 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", source.DisplayPath(path))
	return nil
}

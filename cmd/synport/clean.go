package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synport/internal/cache"
	"synport/internal/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the migration cache",
	Long:  "Remove the cache that lets migrate leave unchanged outputs alone. The next migrate rewrites every output.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := cache.DefaultDir(appName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "cache directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	c, err := cache.Open(dir)
	if err != nil {
		return err
	}
	if err := c.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", source.DisplayPath(dir))
	return nil
}

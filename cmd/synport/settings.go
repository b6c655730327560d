package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"synport/internal/comments"
	"synport/internal/driver"
	"synport/internal/section"
)

// migrateSettings is the merged view of defaults, synport.toml and flags.
type migrateSettings struct {
	Source          string
	Output          string
	Extension       string
	Suffix          string
	OutputExtension string
	Marker          string
	HeaderFile      string
	EmptySection    string
	Exclude         []string
	Encoding        string
	Jobs            int
}

const defaultOutputDir = "portage"

func defaultMigrateSettings() migrateSettings {
	return migrateSettings{
		Output:          defaultOutputDir,
		Extension:       driver.DefaultExtension,
		Suffix:          driver.DefaultSuffix,
		OutputExtension: driver.DefaultOutputExtension,
		Marker:          section.Marker,
		EmptySection:    string(driver.EmptySectionSkip),
		Encoding:        "utf-8",
	}
}

// resolveMigrateSettings applies, in order: built-in defaults, the manifest,
// changed flags, then positional arguments.
func resolveMigrateSettings(cmd *cobra.Command, args []string, m *manifest) (migrateSettings, error) {
	s := defaultMigrateSettings()
	if m != nil {
		c := m.Config.Migrate
		setIf(m.defined("migrate", "source"), &s.Source, m.path(c.Source))
		setIf(m.defined("migrate", "output"), &s.Output, m.path(c.Output))
		setIf(m.defined("migrate", "extension"), &s.Extension, c.Extension)
		setIf(m.defined("migrate", "suffix"), &s.Suffix, c.Suffix)
		setIf(m.defined("migrate", "output_extension"), &s.OutputExtension, c.OutputExtension)
		setIf(m.defined("migrate", "marker"), &s.Marker, c.Marker)
		setIf(m.defined("migrate", "header_file"), &s.HeaderFile, m.path(c.HeaderFile))
		setIf(m.defined("migrate", "empty_section"), &s.EmptySection, c.EmptySection)
		setIf(m.defined("migrate", "encoding"), &s.Encoding, c.Encoding)
		if m.defined("migrate", "exclude") {
			s.Exclude = append([]string(nil), c.Exclude...)
		}
		if m.defined("migrate", "jobs") {
			s.Jobs = c.Jobs
		}
	}

	flags := cmd.Flags()
	var err error
	stringFlag := func(name string, dst *string) {
		if err != nil || !flags.Changed(name) {
			return
		}
		*dst, err = flags.GetString(name)
	}
	stringFlag("extension", &s.Extension)
	stringFlag("suffix", &s.Suffix)
	stringFlag("output-extension", &s.OutputExtension)
	stringFlag("marker", &s.Marker)
	stringFlag("header-file", &s.HeaderFile)
	stringFlag("empty-section", &s.EmptySection)
	stringFlag("encoding", &s.Encoding)
	if err == nil && flags.Changed("exclude") {
		s.Exclude, err = flags.GetStringArray("exclude")
	}
	if err == nil && flags.Changed("jobs") {
		s.Jobs, err = flags.GetInt("jobs")
	}
	if err != nil {
		return s, err
	}

	if len(args) > 0 {
		s.Source = args[0]
	}
	if len(args) > 1 {
		s.Output = args[1]
	}
	if strings.TrimSpace(s.Source) == "" {
		return s, errors.New("migrate: no source directory (pass it as an argument or set [migrate].source in synport.toml)")
	}
	if s.Jobs < 0 {
		return s, fmt.Errorf("migrate: --jobs must not be negative")
	}
	if s.Marker == "" {
		return s, errors.New("migrate: marker must not be empty")
	}
	return s, nil
}

// commentSettings is the merged configuration of the comments command.
type commentSettings struct {
	Root      string
	Extension string
	Width     int
	Fill      bool
	Encoding  string
}

func resolveCommentSettings(cmd *cobra.Command, args []string, m *manifest) (commentSettings, error) {
	s := commentSettings{
		Root:      defaultOutputDir,
		Extension: driver.DefaultOutputExtension,
		Width:     comments.DefaultWidth,
		Encoding:  "utf-8",
	}
	if m != nil {
		c := m.Config.Comments
		setIf(m.defined("comments", "root"), &s.Root, m.path(c.Root))
		setIf(m.defined("comments", "extension"), &s.Extension, c.Extension)
		setIf(m.defined("comments", "encoding"), &s.Encoding, c.Encoding)
		if m.defined("comments", "width") {
			s.Width = c.Width
		}
		if m.defined("comments", "fill") {
			s.Fill = c.Fill
		}
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("extension") {
		s.Extension, err = flags.GetString("extension")
	}
	if err == nil && flags.Changed("encoding") {
		s.Encoding, err = flags.GetString("encoding")
	}
	if err == nil && flags.Changed("width") {
		s.Width, err = flags.GetInt("width")
	}
	if err == nil && flags.Changed("fill") {
		s.Fill, err = flags.GetBool("fill")
	}
	if err != nil {
		return s, err
	}
	if len(args) > 0 {
		s.Root = args[0]
	}
	if s.Width <= comments.DefaultLeadRule {
		return s, fmt.Errorf("comments: width %d is too narrow for the banner", s.Width)
	}
	return s, nil
}

func setIf(ok bool, dst *string, value string) {
	if ok {
		*dst = value
	}
}

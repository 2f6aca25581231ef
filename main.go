// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cybrota/avlscript/avl"
	"github.com/cybrota/avlscript/script"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", Red, Reset, err)
		os.Exit(1)
	}
}

type runFlags struct {
	check    bool
	progress bool
	stats    bool
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags runFlags

	runE := func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runScriptFile(cmd, args[0], flags, stdout, stderr)
	}

	var rootCmd = &cobra.Command{
		Use:           "avlscript [file]",
		Version:       version,
		Short:         "Run insert/delete/print scripts against an AVL tree",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	var cmdRun = &cobra.Command{
		Use:           "run <file>",
		Short:         "Run a command script and print the tree on every print command",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	var cmdStep = &cobra.Command{
		Use:   "step <file>",
		Short: "Step through a command script in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			// a malformed command ends the script but is still shown as its last step
			cmds, failure := script.ParseAll(f)
			if failure != nil && !errors.Is(failure, script.ErrMalformedCommand) {
				return failure
			}
			return runStepApp(filepath.Base(args[0]), cmds, failure)
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration in ~/" + configFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := getConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
			return displaySettings(stdout, configPath)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print the avlscript usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlscript version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, version)
		},
	}

	for _, c := range []*cobra.Command{rootCmd, cmdRun} {
		c.Flags().BoolVar(&flags.check, "check", false, "verify tree invariants after every insert/delete")
		c.Flags().BoolVar(&flags.progress, "progress", false, "show a progress counter on stderr")
		c.Flags().BoolVar(&flags.stats, "stats", false, "print run statistics on stderr")
		c.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.AddCommand(cmdRun, cmdStep, cmdSettings, cmdUsage, cmdVersion)
	return rootCmd
}

// runScriptFile runs one script. Flags that were set win over the config
// file.
func runScriptFile(cmd *cobra.Command, path string, flags runFlags, stdout, stderr io.Writer) error {
	config, cfgErr := LoadConfig()

	level := config.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = flags.logLevel
	}
	logger, err := newLogger(stderr, level)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("using default configuration")
	}

	opts := RunOptions{
		CheckInvariants:   config.Run.CheckInvariants,
		SkipUnseenDeletes: config.Run.SkipUnseenDeletes,
		Cache:             NewRenderCache(config.CacheTTLDuration()),
		Logger:            &logger,
	}
	if cmd.Flags().Changed("check") {
		opts.CheckInvariants = flags.check
	}
	progress := config.Run.Progress
	if cmd.Flags().Changed("progress") {
		progress = flags.progress
	}
	if progress {
		opts.Progress = stderr
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger.Info().Str("script", path).Bool("check", opts.CheckInvariants).Msg("running")
	stats, err := NewRunner(avl.New(), stdout, opts).Run(script.NewParser(f))
	if flags.stats {
		fmt.Fprintln(stderr, formatStats(NewStyles(), stats))
	}
	if err != nil {
		return err
	}
	logger.Info().Int("commands", stats.Commands).Msg("done")
	return nil
}

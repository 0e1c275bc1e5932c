// Package main is the entry point for the video-browser TUI application.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtg01100/video-browser/internal/cli"
	"github.com/dtg01100/video-browser/internal/config"
	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/logging"
	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/dtg01100/video-browser/internal/tui"
)

var version = "dev"

type Config struct {
	ShowVersion bool
	ConfigDir   string
	LogLevel    string
	Seed        uint64
}

type TUIRunner interface {
	Run(opts tui.Options) error
}

type defaultTUIRunner struct{}

func (d *defaultTUIRunner) Run(opts tui.Options) error {
	return tui.Run(opts)
}

func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("video-browser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Print version and exit")
	configDir := fs.String("config", "", "Custom config directory (overrides XDG_CONFIG_HOME)")
	logLevel := fs.String("log-level", "", "Override log.level from the config file")
	seed := fs.Uint64("seed", 0, "Seed the catalog generator for a reproducible catalog")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		ShowVersion: *showVersion,
		ConfigDir:   *configDir,
		LogLevel:    *logLevel,
		Seed:        *seed,
	}, nil
}

func printVersion(w io.Writer, v string) {
	fmt.Fprintln(w, v)
}

func handleConfigDir(configDir string) error {
	if configDir == "" {
		return nil
	}

	resolvedDir := configDir
	if fi, err := os.Stat(configDir); err == nil && !fi.IsDir() {
		resolvedDir = filepath.Dir(configDir)
	}

	return os.Setenv("XDG_CONFIG_HOME", resolvedDir)
}

type AppDeps struct {
	Stdout       io.Writer
	Stderr       io.Writer
	LoadConfig   func() (*config.Config, error)
	NewTUIRunner func() TUIRunner
	ParseFlags   func(args []string) (*Config, error)
}

func DefaultAppDeps(stdout, stderr io.Writer) *AppDeps {
	return &AppDeps{
		Stdout:     stdout,
		Stderr:     stderr,
		LoadConfig: config.Load,
		NewTUIRunner: func() TUIRunner {
			return &defaultTUIRunner{}
		},
		ParseFlags: parseFlags,
	}
}

func runMainWithDeps(args []string, deps *AppDeps) int {
	flags, err := deps.ParseFlags(args)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error parsing flags: %v\n", err)
		return 2
	}

	if flags.ShowVersion {
		printVersion(deps.Stdout, version)
		return 0
	}

	if err := handleConfigDir(flags.ConfigDir); err != nil {
		fmt.Fprintf(deps.Stderr, "Error handling config directory: %v\n", err)
		return 1
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error loading config: %v\n", err)
		if s := apperrors.GetSuggestion(err); s != "" {
			fmt.Fprintf(deps.Stderr, "Hint: %s\n", s)
		}
		return 1
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error resolving log file: %v\n", err)
		return 1
	}

	logger, closer, err := logging.Open(logPath, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer closer.Close()

	logger.Info().Str("version", version).Msg("video-browser starting")

	var genOpts []mock.Option
	if flags.Seed != 0 {
		genOpts = append(genOpts, mock.WithSeed(flags.Seed))
	}

	tui.Version = version

	runner := deps.NewTUIRunner()
	if err := runner.Run(tui.Options{
		Config:    cfg,
		Logger:    logger,
		Generator: mock.NewGenerator(genOpts...),
		API:       mock.NewAPI(),
	}); err != nil {
		logger.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info().Msg("video-browser stopped")
	return 0
}

func runMain(args []string, stdout, stderr io.Writer) int {
	return runMainWithDeps(args, DefaultAppDeps(stdout, stderr))
}

// isCLIInvocation reports whether args address a cobra command rather than
// the interactive browser: the first positional argument names a command,
// or a flag only the CLI understands is present.
func isCLIInvocation(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "-j", "--json", "-y", "--yaml":
			return true
		case "--config", "--log-level", "--seed":
			i++
			continue
		}
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		for _, name := range cli.Commands() {
			if arg == name {
				return true
			}
		}
		return false
	}
	return false
}

func main() {
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "--version" || arg == "-v" {
			printVersion(os.Stdout, version)
			os.Exit(0)
		}
	}

	if isCLIInvocation(args) {
		cli.SetVersion(version)
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Otherwise, TUI mode (--config, --log-level, --seed)
	os.Exit(runMain(args, os.Stdout, os.Stderr))
}

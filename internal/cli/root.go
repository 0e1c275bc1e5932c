package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dtg01100/video-browser/internal/config"
	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile    string
	outputJSON bool
	outputYAML bool
)

var rootCmd = &cobra.Command{
	Use:   "video-browser",
	Short: "Browse a mock video catalog in the terminal",
	Long: `video-browser is a terminal video browser backed by a generated mock
catalog. Run it without a command to open the interactive browser, or use
the commands below to inspect the catalog, exercise the mock API and manage
the configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $XDG_CONFIG_HOME/video-browser)")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&outputYAML, "yaml", "y", false, "output in YAML format")
	rootCmd.Flags().BoolP("version", "v", false, "print version and exit")
}

func Execute() error {
	return execute(rootCmd)
}

// execute runs cmd and reports a failure, with its suggestion when it has
// one, on the command's error stream.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

func SetVersion(v string) {
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Commands lists the names of the registered subcommands, plus cobra's
// built-in help and completion.
func Commands() []string {
	names := []string{"help", "completion"}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

// loadConfig returns the application configuration, using the --config flag
// if provided. This function is injectable for testing purposes.
var loadConfig = func() (*config.Config, error) {
	if cfgFile != "" {
		if err := os.Setenv("XDG_CONFIG_HOME", cfgFile); err != nil {
			return nil, fmt.Errorf("failed to set config directory: %w", err)
		}
	}
	return config.Load()
}

// loadGenerator returns the catalog generator.
// This function is injectable for testing purposes.
var loadGenerator = func() *mock.Generator {
	return mock.NewGenerator()
}

// loadAPI returns the simulated backend.
// This function is injectable for testing purposes.
var loadAPI = func() *mock.API {
	return mock.NewAPI()
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// printStructured writes v as JSON or YAML when one of the output flags is
// set and reports whether it did.
func printStructured(w io.Writer, v interface{}) (bool, error) {
	switch {
	case outputJSON:
		return true, printJSON(w, v)
	case outputYAML:
		return true, printYAML(w, v)
	}
	return false, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if s := apperrors.GetSuggestion(err); s != "" {
		fmt.Fprintf(w, "Hint: %s\n", s)
	}
}

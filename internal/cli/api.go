package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/dtg01100/video-browser/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	apiData    []string
	apiTimeout time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api <url>",
	Short: "Send a request to the mock API",
	Long: `Send a request to the simulated backend and print the response envelope.

The backend answers every request successfully after a fixed delay and echoes
the --data pairs back. Values are coerced to booleans or integers when they
parse as such.`,
	Example: `  video-browser api /api/favorites --data id=42 --data notify=true`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAPI,
}

func init() {
	apiCmd.Flags().StringArrayVarP(&apiData, "data", "d", nil, "request data as key=value (repeatable)")
	apiCmd.Flags().DurationVar(&apiTimeout, "timeout", 5*time.Second, "give up after this long")
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	data, err := utils.ParseKeyValues(apiData)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), apiTimeout)
	defer cancel()

	env, err := loadAPI().Request(ctx, args[0], mock.Options{Data: data})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputYAML {
		return printYAML(out, env)
	}
	if outputJSON {
		return printJSON(out, env)
	}

	fmt.Fprintf(out, "%s %s\n", args[0], env.Message)
	return printJSON(out, env.Data)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/pkg/utils"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the browser log file",
	Long: `Print the structured log written by the interactive browser.

With --follow the command keeps running and prints new lines as they are
appended, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow the log file")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 0, "only print the last N lines (0 prints all)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := cfg.LogFile()
	if err != nil {
		return err
	}
	if !utils.FileExists(path) {
		return apperrors.New(apperrors.ErrLogFileMissing, "Log file %s not found", path)
	}

	ctx := cmd.Context()
	if logsFollow {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	return tailLog(ctx, cmd.OutOrStdout(), path, logsFollow, logsLines)
}

// tailLog copies the lines of path to w. Without follow it stops at end of
// file; with follow it runs until ctx is done. A positive last prints only
// the final lines present when the call starts.
func tailLog(ctx context.Context, w io.Writer, path string, follow bool, last int) error {
	cfg := tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}

	if last > 0 {
		lines, err := lastLines(path, last)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
		if !follow {
			return nil
		}
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return fmt.Errorf("tail %s: %w", path, err)
	}
	defer t.Cleanup()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}

func lastLines(path string, n int) ([]string, error) {
	t, err := tail.TailFile(path, tail.Config{MustExist: true, Logger: tail.DiscardingLogger})
	if err != nil {
		return nil, fmt.Errorf("tail %s: %w", path, err)
	}
	defer t.Cleanup()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			return nil, line.Err
		}
		lines = append(lines, line.Text)
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines, nil
}

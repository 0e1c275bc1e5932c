package cli

import (
	"fmt"

	"github.com/dtg01100/video-browser/internal/config"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a generated catalog to a file",
	Long: `Generate a full catalog (videos, sources and settings) and write it to
<file>. The format follows the extension: .json, .yaml or .yml.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Validate and summarize an exported catalog",
	Long: `Read a catalog written by export and check every entry: video shape,
setting value domains and exactly one default source.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog := loadGenerator().Catalog(cfg.Catalog.Videos, cfg.Catalog.Sources)
	if err := config.ExportCatalog(args[0], catalog); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s videos, %s sources and %s settings to %s\n",
		humanize.Comma(int64(len(catalog.Videos))),
		humanize.Comma(int64(len(catalog.Sources))),
		humanize.Comma(int64(len(catalog.Settings))),
		args[0])
	return nil
}

// catalogSummary is the result of inspecting a catalog file.
type catalogSummary struct {
	Videos   int      `json:"videos" yaml:"videos"`
	Sources  int      `json:"sources" yaml:"sources"`
	Settings int      `json:"settings" yaml:"settings"`
	Problems []string `json:"problems" yaml:"problems"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	catalog, err := config.ImportCatalog(args[0])
	if err != nil {
		return err
	}

	summary := inspectCatalog(catalog)
	out := cmd.OutOrStdout()
	if done, err := printStructured(out, summary); done {
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%s: %s videos, %s sources, %s settings\n", args[0],
			humanize.Comma(int64(summary.Videos)),
			humanize.Comma(int64(summary.Sources)),
			humanize.Comma(int64(summary.Settings)))
		for _, p := range summary.Problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}

	if len(summary.Problems) > 0 {
		return fmt.Errorf("%s has %d problem(s)", args[0], len(summary.Problems))
	}
	return nil
}

func inspectCatalog(catalog models.Catalog) catalogSummary {
	summary := catalogSummary{
		Videos:   len(catalog.Videos),
		Sources:  len(catalog.Sources),
		Settings: len(catalog.Settings),
		Problems: []string{},
	}

	for _, v := range catalog.Videos {
		if err := v.Validate(); err != nil {
			summary.Problems = append(summary.Problems, err.Error())
		}
	}
	for _, s := range catalog.Settings {
		if err := s.Validate(); err != nil {
			summary.Problems = append(summary.Problems, err.Error())
		}
	}
	if len(catalog.Sources) > 0 {
		if n := models.DefaultSources(catalog.Sources); n != 1 {
			summary.Problems = append(summary.Problems, fmt.Sprintf("expected exactly one default source, found %d", n))
		}
	}
	return summary
}

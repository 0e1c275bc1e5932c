package cli

import (
	"fmt"
	"strings"

	"github.com/dtg01100/video-browser/internal/format"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	videosCount  int
	sourcesCount int
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List generated videos",
	Long: `Generate a batch of mock videos and print them.

The batch size defaults to catalog.videos from the config file.`,
	Args: cobra.NoArgs,
	RunE: runVideos,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List generated video sources",
	Long: `Generate a batch of mock video sources and print them.
The first source of every batch is the default one.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List the settings catalog",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func init() {
	videosCmd.Flags().IntVarP(&videosCount, "count", "n", 0, "number of videos to generate (default from config)")
	sourcesCmd.Flags().IntVarP(&sourcesCount, "count", "n", 0, "number of sources to generate (default from config)")

	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(settingsCmd)
}

// batchSize returns the --count flag when given, otherwise the configured size.
func batchSize(cmd *cobra.Command, flagValue, configured int) int {
	if cmd.Flags().Changed("count") {
		return flagValue
	}
	return configured
}

func runVideos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	videos := loadGenerator().Videos(batchSize(cmd, videosCount, cfg.Catalog.Videos))
	out := cmd.OutOrStdout()

	if done, err := printStructured(out, videos); done {
		return err
	}

	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos generated.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tVIEWS\tDURATION")
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(v.ID), v.Title, v.Category, format.Number(v.Views), v.Duration)
	}
	return w.Flush()
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources := loadGenerator().Sources(batchSize(cmd, sourcesCount, cfg.Catalog.Sources))
	out := cmd.OutOrStdout()

	if done, err := printStructured(out, sources); done {
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(out, "No sources generated.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tURL\tDEFAULT\tCREATED")
	for _, s := range sources {
		def := ""
		if s.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(s.ID), s.Name, s.URL, def, humanize.Time(s.CreatedAt))
	}
	return w.Flush()
}

func runSettings(cmd *cobra.Command, args []string) error {
	settings := loadGenerator().Settings()
	out := cmd.OutOrStdout()

	if done, err := printStructured(out, settings); done {
		return err
	}

	w := newTable(out)
	fmt.Fprintln(w, "KEY\tLABEL\tTYPE\tVALUE\tOPTIONS")
	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Key, s.Label, s.Type, s.StringValue(), settingOptions(s))
	}
	return w.Flush()
}

func settingOptions(s models.SettingItem) string {
	if s.Type != models.SettingSelect {
		return "-"
	}
	return strings.Join(s.Options, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

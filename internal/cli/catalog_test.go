package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtg01100/video-browser/internal/config"
	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/dtg01100/video-browser/internal/models"
	"gopkg.in/yaml.v3"
)

func TestVideosTable(t *testing.T) {
	setupCLI(t)

	out, _, err := runCmd(t, rootCmd, "videos")
	if err != nil {
		t.Fatalf("videos failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected header + 12 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "DURATION") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Video 1") {
		t.Errorf("first row should be Video 1, got %q", lines[1])
	}
}

func TestVideosCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "explicit count", args: []string{"videos", "--count", "3"}, want: 3},
		{name: "zero", args: []string{"videos", "-n", "0"}, want: 0},
		{name: "negative clamps to empty", args: []string{"videos", "--count=-4"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			out, _, err := runCmd(t, rootCmd, append(tt.args, "--json")...)
			if err != nil {
				t.Fatalf("videos failed: %v", err)
			}
			var videos []models.Video
			if err := json.Unmarshal([]byte(out), &videos); err != nil {
				t.Fatalf("invalid JSON %q: %v", out, err)
			}
			if len(videos) != tt.want {
				t.Errorf("got %d videos, want %d", len(videos), tt.want)
			}
		})
	}
}

func TestVideosEmptyTable(t *testing.T) {
	setupCLI(t)
	out, _, err := runCmd(t, rootCmd, "videos", "--count", "0")
	if err != nil {
		t.Fatalf("videos failed: %v", err)
	}
	if out != "No videos generated.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVideosCountFromConfig(t *testing.T) {
	dir := setupCLI(t)
	cfgDir := filepath.Join(dir, "video-browser")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("catalog:\n  videos: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCmd(t, rootCmd, "videos", "--json")
	if err != nil {
		t.Fatalf("videos failed: %v", err)
	}
	var videos []models.Video
	if err := json.Unmarshal([]byte(out), &videos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("got %d videos, want 2 from config", len(videos))
	}
}

func TestSourcesOutput(t *testing.T) {
	setupCLI(t)

	out, _, err := runCmd(t, rootCmd, "sources")
	if err != nil {
		t.Fatalf("sources failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "yes") {
		t.Errorf("first source should be default: %q", lines[1])
	}
	for _, l := range lines[2:] {
		if strings.Contains(l, "yes") {
			t.Errorf("only the first source may be default: %q", l)
		}
	}

	out, _, err = runCmd(t, rootCmd, "sources", "--yaml", "--count", "2")
	if err != nil {
		t.Fatalf("sources --yaml failed: %v", err)
	}
	var sources []models.Source
	if err := yaml.Unmarshal([]byte(out), &sources); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(sources) != 2 || !sources[0].IsDefault || sources[1].IsDefault {
		t.Errorf("unexpected sources %+v", sources)
	}
}

func TestSettingsOutput(t *testing.T) {
	setupCLI(t)

	out, _, err := runCmd(t, rootCmd, "settings")
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	for _, want := range []string{"autoPlay", "language", "zh-CN, en-US, ja-JP", "downloadPath", "maxDownloads"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings output missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCmd(t, rootCmd, "settings", "--json")
	if err != nil {
		t.Fatalf("settings --json failed: %v", err)
	}
	var settings []models.SettingItem
	if err := json.Unmarshal([]byte(out), &settings); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(settings) != 7 {
		t.Errorf("got %d settings, want 7", len(settings))
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestExport(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "catalog.json")

	out, _, err := runCmd(t, rootCmd, "export", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 12 videos, 5 sources and 7 settings") {
		t.Errorf("unexpected output %q", out)
	}

	catalog, err := config.ImportCatalog(path)
	if err != nil {
		t.Fatalf("ImportCatalog: %v", err)
	}
	if len(catalog.Videos) != 12 || len(catalog.Sources) != 5 {
		t.Errorf("imported %d videos and %d sources", len(catalog.Videos), len(catalog.Sources))
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	setupCLI(t)
	_, _, err := runCmd(t, rootCmd, "export", filepath.Join(t.TempDir(), "catalog.csv"))
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestAPI(t *testing.T) {
	setupCLI(t)

	out, _, err := runCmd(t, rootCmd, "api", "/api/favorites", "--data", "id=42", "-d", "notify=true", "--json")
	if err != nil {
		t.Fatalf("api failed: %v", err)
	}
	var env mock.Envelope
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
	if env.Data["id"] != float64(42) || env.Data["notify"] != true {
		t.Errorf("unexpected data %v", env.Data)
	}
}

func TestAPITextOutput(t *testing.T) {
	setupCLI(t)

	out, _, err := runCmd(t, rootCmd, "api", "/api/history")
	if err != nil {
		t.Fatalf("api failed: %v", err)
	}
	if !strings.HasPrefix(out, "/api/history Request succeeded\n") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasSuffix(out, "{}\n") {
		t.Errorf("expected empty data object, got %q", out)
	}
}

func TestAPIInvalidData(t *testing.T) {
	setupCLI(t)
	if _, _, err := runCmd(t, rootCmd, "api", "/api/x", "--data", "novalue"); err == nil {
		t.Error("expected error for data without '='")
	}
}

func TestAPITimeout(t *testing.T) {
	setupCLI(t)
	loadAPI = func() *mock.API { return &mock.API{Latency: time.Hour} }

	_, _, err := runCmd(t, rootCmd, "api", "/api/slow", "--timeout", "10ms")
	if !errors.Is(err, apperrors.ErrRequestCancelled) {
		t.Errorf("expected ErrRequestCancelled, got %v", err)
	}
}

func TestInspectExportedCatalog(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if _, _, err := runCmd(t, rootCmd, "export", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out, _, err := runCmd(t, rootCmd, "inspect", path)
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "12 videos, 5 sources, 7 settings") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInspectReportsProblems(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{
  "videos": [{"id": "v1", "title": "Video 1", "category": "Opera", "views": 1, "duration": "1:05"}],
  "sources": [{"id": "s1", "is_default": true}, {"id": "s2", "is_default": true}],
  "settings": [{"key": "maxDownloads", "type": "number", "value": "NaN"}]
}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCmd(t, rootCmd, "inspect", path, "--json")
	if err == nil {
		t.Fatal("expected inspect to fail")
	}
	var summary catalogSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(summary.Problems) != 3 {
		t.Errorf("problems = %v, want 3", summary.Problems)
	}
}

func TestInspectUnsupportedFormat(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte("id,title\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCmd(t, rootCmd, "inspect", path)
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

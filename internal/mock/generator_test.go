package mock

import (
	"sync"
	"testing"
	"time"

	"github.com/dtg01100/video-browser/internal/models"
)

func TestGenerator_VideosCountAndUniqueIDs(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	for _, count := range []int{0, 1, 12, 250} {
		videos := g.Videos(count)
		if len(videos) != count {
			t.Fatalf("Videos(%d) returned %d videos", count, len(videos))
		}

		seen := make(map[string]bool)
		for _, v := range videos {
			if seen[v.ID] {
				t.Fatalf("Videos(%d): duplicate id %q", count, v.ID)
			}
			seen[v.ID] = true

			if err := v.Validate(); err != nil {
				t.Errorf("Videos(%d): invalid video: %v", count, err)
			}
			if v.Views < 1000 || v.Views >= 101000 {
				t.Errorf("views %d outside [1000, 101000)", v.Views)
			}
		}
	}
}

func TestGenerator_NegativeCountIsEmpty(t *testing.T) {
	g := NewGenerator()

	if got := g.Videos(-3); len(got) != 0 {
		t.Errorf("Videos(-3) = %d videos, want 0", len(got))
	}
	if got := g.Sources(-1); len(got) != 0 {
		t.Errorf("Sources(-1) = %d sources, want 0", len(got))
	}
}

func TestGenerator_VideoFields(t *testing.T) {
	videos := NewGenerator(WithSeed(7)).Videos(3)

	if videos[0].Title != "Video 1" || videos[2].Title != "Video 3" {
		t.Errorf("unexpected titles %q, %q", videos[0].Title, videos[2].Title)
	}
	if videos[1].Thumbnail != "https://picsum.photos/seed/video1/320/180" {
		t.Errorf("Thumbnail = %q", videos[1].Thumbnail)
	}
	for _, v := range videos {
		if v.Duration[0] != '1' && v.Duration[0] != '2' {
			t.Errorf("Duration %q should start with 1 or 2 minutes", v.Duration)
		}
	}
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	id := 0
	ids := func() string { id++; return string(rune('a' + id)) }

	a := NewGenerator(WithSeed(42), WithIDFunc(ids)).Videos(5)
	id = 0
	b := NewGenerator(WithSeed(42), WithIDFunc(ids)).Videos(5)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("video %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerator_SourcesFirstIsOnlyDefault(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewGenerator(WithClock(func() time.Time { return fixed }))

	for _, count := range []int{1, 2, 5, 40} {
		sources := g.Sources(count)
		if len(sources) != count {
			t.Fatalf("Sources(%d) returned %d", count, len(sources))
		}
		if !sources[0].IsDefault {
			t.Errorf("Sources(%d): first source is not default", count)
		}
		if n := models.DefaultSources(sources); n != 1 {
			t.Errorf("Sources(%d): %d defaults, want 1", count, n)
		}

		seen := make(map[string]bool)
		for i, s := range sources {
			if seen[s.ID] {
				t.Errorf("duplicate source id %q", s.ID)
			}
			seen[s.ID] = true
			if !s.IsActive {
				t.Errorf("source %d should be active", i)
			}
			if !s.CreatedAt.Equal(fixed) || !s.UpdatedAt.Equal(fixed) {
				t.Errorf("source %d timestamps = %v/%v, want %v", i, s.CreatedAt, s.UpdatedAt, fixed)
			}
		}
	}

	if sources := g.Sources(3); sources[2].URL != "https://example.com/source3" || sources[2].Name != "Source 3" {
		t.Errorf("unexpected third source %+v", sources[2])
	}
}

func TestGenerateSettings(t *testing.T) {
	settings := GenerateSettings()

	wantKeys := []string{"autoPlay", "hdQuality", "notifications", "darkMode", "language", "downloadPath", "maxDownloads"}
	if len(settings) != len(wantKeys) {
		t.Fatalf("len(settings) = %d, want %d", len(settings), len(wantKeys))
	}

	for i, s := range settings {
		if s.Key != wantKeys[i] {
			t.Errorf("settings[%d].Key = %q, want %q", i, s.Key, wantKeys[i])
		}
		if err := s.Validate(); err != nil {
			t.Errorf("settings[%d] invalid: %v", i, err)
		}
	}

	settings[4].Options[0] = "changed"
	if GenerateSettings()[4].Options[0] != "zh-CN" {
		t.Error("GenerateSettings should return a fresh catalog on every call")
	}
}

func TestPackageFunctions(t *testing.T) {
	if got := len(GenerateVideos(DefaultVideoCount)); got != 12 {
		t.Errorf("GenerateVideos(DefaultVideoCount) = %d", got)
	}
	if got := len(GenerateSources(DefaultSourceCount)); got != 5 {
		t.Errorf("GenerateSources(DefaultSourceCount) = %d", got)
	}
}

func TestGenerateFunctions_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(GenerateVideos(20)); got != 20 {
				t.Errorf("GenerateVideos(20) returned %d", got)
			}
			sources := GenerateSources(3)
			if models.DefaultSources(sources) != 1 {
				t.Errorf("expected one default source, got %+v", sources)
			}
		}()
	}
	wg.Wait()
}

// Package mock produces the synthetic catalog the browser displays and a
// stand-in for the network API a real deployment would call.
package mock

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dtg01100/video-browser/internal/format"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/google/uuid"
)

const (
	// DefaultVideoCount is the batch size used when no count is configured.
	DefaultVideoCount = 12
	// DefaultSourceCount is the batch size used when no count is configured.
	DefaultSourceCount = 5

	minViews   = 1000
	viewsRange = 100000
)

// Generator builds randomized entities. The zero value is not usable; call
// NewGenerator. A Generator is not safe for concurrent use; the package-level
// Generate functions serialize access to their shared instance.
type Generator struct {
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock overrides the timestamp source for sources.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDFunc overrides the identifier source.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// NewGenerator creates a generator seeded from the runtime source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
		newID: generateID,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// generateID returns an opaque identifier unique across batches.
func generateID() string {
	return uuid.NewString()
}

// Views draws a view count uniformly from [1000, 101000).
func (g *Generator) Views() int {
	return minViews + g.rng.IntN(viewsRange)
}

// Videos returns count videos. A negative count yields an empty batch.
func (g *Generator) Videos(count int) []models.Video {
	if count < 0 {
		count = 0
	}

	videos := make([]models.Video, 0, count)
	for i := 0; i < count; i++ {
		minutes := 1 + g.rng.IntN(2)
		seconds := g.rng.IntN(60)
		videos = append(videos, models.Video{
			ID:        g.newID(),
			Title:     fmt.Sprintf("Video %d", i+1),
			Category:  models.Categories[g.rng.IntN(len(models.Categories))],
			Views:     g.Views(),
			Duration:  format.Duration(minutes*60 + seconds),
			Thumbnail: fmt.Sprintf("https://picsum.photos/seed/video%d/320/180", i),
		})
	}
	return videos
}

// Sources returns count sources; only the first is marked default.
// A negative count yields an empty batch.
func (g *Generator) Sources(count int) []models.Source {
	if count < 0 {
		count = 0
	}

	now := g.now().UTC()
	sources := make([]models.Source, 0, count)
	for i := 0; i < count; i++ {
		sources = append(sources, models.Source{
			ID:        g.newID(),
			Name:      fmt.Sprintf("Source %d", i+1),
			URL:       fmt.Sprintf("https://example.com/source%d", i+1),
			IsDefault: i == 0,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return sources
}

// Settings returns the fixed settings catalog. Each call returns a fresh
// copy so callers can never alter the catalog.
func (g *Generator) Settings() []models.SettingItem {
	return GenerateSettings()
}

// Catalog generates a full catalog in one call.
func (g *Generator) Catalog(videos, sources int) models.Catalog {
	return models.Catalog{
		Videos:   g.Videos(videos),
		Sources:  g.Sources(sources),
		Settings: g.Settings(),
	}
}

var (
	defaultMu        sync.Mutex
	defaultGenerator = NewGenerator()
)

// GenerateVideos returns count videos from the package generator.
// It is safe for concurrent use.
func GenerateVideos(count int) []models.Video {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGenerator.Videos(count)
}

// GenerateSources returns count sources from the package generator.
// It is safe for concurrent use.
func GenerateSources(count int) []models.Source {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGenerator.Sources(count)
}

// GenerateSettings returns the static settings catalog.
func GenerateSettings() []models.SettingItem {
	return []models.SettingItem{
		{Key: "autoPlay", Label: "Auto play", Type: models.SettingBoolean, Value: true},
		{Key: "hdQuality", Label: "Default to HD quality", Type: models.SettingBoolean, Value: false},
		{Key: "notifications", Label: "Receive notifications", Type: models.SettingBoolean, Value: true},
		{Key: "darkMode", Label: "Dark mode", Type: models.SettingBoolean, Value: false},
		{Key: "language", Label: "Language", Type: models.SettingSelect, Value: "zh-CN", Options: []string{"zh-CN", "en-US", "ja-JP"}},
		{Key: "downloadPath", Label: "Download path", Type: models.SettingText, Value: "/Downloads/Videos"},
		{Key: "maxDownloads", Label: "Max simultaneous downloads", Type: models.SettingNumber, Value: 3},
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/layout"
	"github.com/OFFIS-RIT/nodelink/pkg/render"

	"github.com/BurntSushi/toml"
)

// Config is a preset file. Every section is optional; missing values keep
// their defaults.
//
//	[layout]
//	repulsion_force = 1500
//	tick_interval = "16ms"
//
//	[render]
//	width = 1024
//	height = 768
//
//	[adapter]
//	mode = "enhanced"
type Config struct {
	Layout  layout.Config     `toml:"layout"`
	Render  render.Style      `toml:"render"`
	Batch   graph.BatchConfig `toml:"batch"`
	Adapter AdapterConfig     `toml:"adapter"`
}

// AdapterConfig tunes text-to-graph conversion.
type AdapterConfig struct {
	Mode            string `toml:"mode"`
	MaxKeywordNodes int    `toml:"max_keyword_nodes"`
	MaxModelNodes   int    `toml:"max_model_nodes"`
}

// Default returns the built-in presets.
func Default() *Config {
	return &Config{
		Layout:  layout.DefaultConfig(),
		Render:  render.DefaultStyle(),
		Batch:   graph.DefaultBatchConfig(),
		Adapter: AdapterConfig{Mode: string(graph.ModeBasic)},
	}
}

// overlay mirrors Config for decoding. Layout fields are pointers so an
// explicit zero is kept.
type overlay struct {
	Layout  layout.Overrides  `toml:"layout"`
	Render  render.Style      `toml:"render"`
	Batch   graph.BatchConfig `toml:"batch"`
	Adapter AdapterConfig     `toml:"adapter"`
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var overlay overlay
	md, err := toml.Decode(string(data), &overlay)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	cfg := Default()
	cfg.Layout = overlay.Layout.Apply(cfg.Layout)
	cfg.Render = mergeStyle(cfg.Render, overlay.Render, md.IsDefined("render", "labels"))
	if overlay.Batch.EntitiesPerBatch > 0 {
		cfg.Batch.EntitiesPerBatch = overlay.Batch.EntitiesPerBatch
	}
	if overlay.Batch.KeywordsPerBatch > 0 {
		cfg.Batch.KeywordsPerBatch = overlay.Batch.KeywordsPerBatch
	}
	if overlay.Batch.RelationshipsPerBatch > 0 {
		cfg.Batch.RelationshipsPerBatch = overlay.Batch.RelationshipsPerBatch
	}
	if overlay.Adapter.Mode != "" {
		cfg.Adapter.Mode = overlay.Adapter.Mode
	}
	cfg.Adapter.MaxKeywordNodes = overlay.Adapter.MaxKeywordNodes
	cfg.Adapter.MaxModelNodes = overlay.Adapter.MaxModelNodes

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the preset at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the layout constants and the adapter mode.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if _, err := graph.ParseMode(c.Adapter.Mode); err != nil {
		return fmt.Errorf("invalid adapter config: %w", err)
	}
	return nil
}

func mergeStyle(base, o render.Style, labelsSet bool) render.Style {
	if o.Width > 0 {
		base.Width = o.Width
	}
	if o.Height > 0 {
		base.Height = o.Height
	}
	if o.Background != "" {
		base.Background = o.Background
	}
	if o.EdgeColor != "" {
		base.EdgeColor = o.EdgeColor
	}
	if o.TextColor != "" {
		base.TextColor = o.TextColor
	}
	if o.Accent != "" {
		base.Accent = o.Accent
	}
	if o.NodeRadius > 0 {
		base.NodeRadius = o.NodeRadius
	}
	if o.FontSize > 0 {
		base.FontSize = o.FontSize
	}
	if labelsSet {
		base.Labels = o.Labels
	}
	return base
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OFFIS-RIT/nodelink/pkg/layout"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[layout]
repulsion_force = 1500
tick_interval = "8ms"
center_force = 0.01

[render]
width = 1024
labels = false

[batch]
keywords_per_batch = 10

[adapter]
mode = "enhanced"
max_keyword_nodes = 5
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	def := layout.DefaultConfig()
	if cfg.Layout.RepulsionForce != 1500 || cfg.Layout.TickInterval != 8*time.Millisecond || cfg.Layout.CenterForce != 0.01 {
		t.Fatalf("layout overlay not applied: %+v", cfg.Layout)
	}
	if cfg.Layout.Damping != def.Damping || cfg.Layout.MaxStabilizationSteps != def.MaxStabilizationSteps {
		t.Fatalf("layout defaults lost: %+v", cfg.Layout)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 600 || cfg.Render.Labels {
		t.Fatalf("render overlay = %+v", cfg.Render)
	}
	if cfg.Batch.KeywordsPerBatch != 10 || cfg.Batch.EntitiesPerBatch != 20 {
		t.Fatalf("batch overlay = %+v", cfg.Batch)
	}
	if cfg.Adapter.Mode != "enhanced" || cfg.Adapter.MaxKeywordNodes != 5 {
		t.Fatalf("adapter overlay = %+v", cfg.Adapter)
	}
}

func TestParseKeepsExplicitZero(t *testing.T) {
	cfg, err := Parse([]byte("[layout]\npadding = 0.0\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Layout.Padding != 0 {
		t.Fatalf("padding = %v, want 0", cfg.Layout.Padding)
	}
	if cfg.Layout.RepulsionForce != layout.DefaultConfig().RepulsionForce {
		t.Fatalf("unset field changed: %+v", cfg.Layout)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad damping", "[layout]\ndamping = 1.5\n"},
		{"too many steps", "[layout]\nmax_stabilization_steps = 2000000000\n"},
		{"bad mode", "[adapter]\nmode = \"telepathy\"\n"},
		{"unknown key", "[layout]\ngravity = 3\n"},
		{"syntax", "[layout\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := Parse([]byte("[layout]\ndamping = 1.5\n"))
	if !errors.Is(err, layout.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.Layout != layout.DefaultConfig() {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "preset.toml")
	if err := os.WriteFile(path, []byte("[layout]\npadding = 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = Load(path)
	if err != nil || cfg.Layout.Padding != 10 {
		t.Fatalf("Load(file) = %+v, %v", cfg, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

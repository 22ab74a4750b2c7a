package computo

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty keyword", func(c *Config) { c.Keyword = "" }},
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
		{"negative dpi", func(c *Config) { c.DPI = -72 }},
		{"negative left margin", func(c *Config) { c.LeftMargin = -1 }},
		{"negative right margin", func(c *Config) { c.RightMargin = -1 }},
		{"zero min crop size", func(c *Config) { c.MinCropSize = 0 }},
		{"negative tabular threshold", func(c *Config) { c.TabularMinChunks = -1 }},
		{"negative fraction threshold", func(c *Config) { c.FractionMinChunks = -1 }},
		{"negative chunk length floor", func(c *Config) { c.GenericMinChunkLen = -1 }},
		{"zero fallback min lines", func(c *Config) { c.FallbackMinLines = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

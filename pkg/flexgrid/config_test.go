package flexgrid

import (
	"math"
	"testing"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// testConfig is the configuration used throughout the grid tests.
func testConfig() Config {
	return Config{
		MinColumns:                     1,
		MaxColumns:                     3,
		MinColumnWidth:                 100,
		Padding:                        10,
		MaxColumnCrop:                  0.1,
		MaxMultiCrop:                   0.1,
		MaxMultiColumnHeightMultiplier: 1.2,
		MaxSequentialMulti:             2,
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}
	if !DefaultConfig().MultiColumnEnabled() {
		t.Error("DefaultConfig should allow multi-column items")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min columns", func(c *Config) { c.MinColumns = 0 }},
		{"max below min", func(c *Config) { c.MaxColumns = 0 }},
		{"negative min width", func(c *Config) { c.MinColumnWidth = -1 }},
		{"nan min width", func(c *Config) { c.MinColumnWidth = math.NaN() }},
		{"negative padding", func(c *Config) { c.Padding = -2 }},
		{"column crop of one", func(c *Config) { c.MaxColumnCrop = 1 }},
		{"negative multi crop", func(c *Config) { c.MaxMultiCrop = -0.1 }},
		{"negative multiplier", func(c *Config) { c.MaxMultiColumnHeightMultiplier = -1 }},
		{"zero sequential", func(c *Config) { c.MaxSequentialMulti = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() error = %v, want %s", err, ferrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigMultiColumnDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MaxMultiColumnHeightMultiplier = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.MultiColumnEnabled() {
		t.Error("MultiColumnEnabled() = true, want false")
	}
}

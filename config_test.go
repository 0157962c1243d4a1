package reef

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestParsePatch(t *testing.T) {
	data := []byte(`
creatureCount: 4
creatureSpeed: 2.5
waterLevel: 0.3
retargetInterval: 2s
particlesEnabled: false
waveColors: ["#ff000080", "#00ff00"]
background:
  colors: ["#000000", "#ffffff"]
  stops: [0, 1]
glowIntensity: 7
`)
	p, err := ParsePatch(data)
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	if p.CreatureCount == nil || *p.CreatureCount != 4 {
		t.Errorf("CreatureCount = %v", p.CreatureCount)
	}
	if p.CreatureSpeed == nil || *p.CreatureSpeed != 2.5 {
		t.Errorf("CreatureSpeed = %v", p.CreatureSpeed)
	}
	if p.RetargetInterval == nil || *p.RetargetInterval != 2*time.Second {
		t.Errorf("RetargetInterval = %v", p.RetargetInterval)
	}
	if p.ParticlesEnabled == nil || *p.ParticlesEnabled {
		t.Errorf("ParticlesEnabled = %v", p.ParticlesEnabled)
	}
	if len(p.WaveColors) != 2 || p.WaveColors[0] != MustParseColor("#ff000080") {
		t.Errorf("WaveColors = %v", p.WaveColors)
	}
	if p.Background == nil || len(p.Background.Colors) != 2 {
		t.Errorf("Background = %v", p.Background)
	}
	if p.WaveCount != nil || p.CreatureSize != nil {
		t.Error("absent keys were set")
	}
}

func TestParsePatchMilliseconds(t *testing.T) {
	p, err := ParsePatch([]byte("retargetIntervalMs: 1500\nbackgroundFadeMs: 0\n"))
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	if p.RetargetInterval == nil || *p.RetargetInterval != 1500*time.Millisecond {
		t.Errorf("RetargetInterval = %v", p.RetargetInterval)
	}
	if p.BackgroundFade == nil || *p.BackgroundFade != 0 {
		t.Errorf("BackgroundFade = %v", p.BackgroundFade)
	}
}

func TestParsePatchErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "creatureCount: [1"},
		{"bad color", `waveColors: ["#zzzzzz"]`},
		{"wrong type", "creatureCount: many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePatch([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("waveCount: 5\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := DefaultConfig()
	want.WaveCount = 5
	if cfg.WaveCount != 5 || cfg.CreatureSize != want.CreatureSize || cfg.ParticleCount != want.ParticleCount {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.WaveColors, want.WaveColors) || !cfg.Background.Equal(want.Background) {
		t.Error("palette or background lost its default")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reef.yaml")
	if err := os.WriteFile(path, []byte("creatureCount: 6\nwaterLevel: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CreatureCount != 6 {
		t.Errorf("CreatureCount = %d, want 6", cfg.CreatureCount)
	}
	if cfg.WaterLevel != 1 {
		t.Errorf("WaterLevel = %v, want clamped to 1", cfg.WaterLevel)
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}

func TestConfigApply(t *testing.T) {
	tests := []struct {
		name  string
		patch ConfigPatch
		check func(Config, configChanges) bool
	}{
		{
			"empty patch changes nothing",
			ConfigPatch{},
			func(c Config, ch configChanges) bool { return !ch.any() },
		},
		{
			"same value is not a change",
			ConfigPatch{CreatureCount: ptr(DefaultCreatureCount)},
			func(c Config, ch configChanges) bool { return !ch.any() },
		},
		{
			"negative count clamps to zero",
			ConfigPatch{WaveCount: ptr(-3)},
			func(c Config, ch configChanges) bool { return c.WaveCount == 0 && ch.waveCount },
		},
		{
			"non-positive size ignored",
			ConfigPatch{CreatureSize: ptr(0.0)},
			func(c Config, ch configChanges) bool { return c.CreatureSize == DefaultCreatureSize && !ch.creatureSize },
		},
		{
			"water level clamped",
			ConfigPatch{WaterLevel: ptr(-1.0)},
			func(c Config, ch configChanges) bool { return c.WaterLevel == 0 && ch.waterLevel },
		},
		{
			"NaN water level ignored",
			ConfigPatch{WaterLevel: ptr(math.NaN())},
			func(c Config, ch configChanges) bool { return c.WaterLevel == DefaultWaterLevel && !ch.waterLevel },
		},
		{
			"NaN size ignored",
			ConfigPatch{CreatureSize: ptr(math.NaN())},
			func(c Config, ch configChanges) bool { return c.CreatureSize == DefaultCreatureSize && !ch.creatureSize },
		},
		{
			"empty palette ignored",
			ConfigPatch{WaveColors: []Color{}},
			func(c Config, ch configChanges) bool { return len(c.WaveColors) == 3 && !ch.waveColors },
		},
		{
			"identical palette ignored",
			ConfigPatch{WaveColors: slices.Clone(defaultWaveColors)},
			func(c Config, ch configChanges) bool { return !ch.waveColors },
		},
		{
			"background normalized",
			ConfigPatch{Background: &Gradient{Colors: []Color{ColorWhite, ColorWhite, ColorWhite}}},
			func(c Config, ch configChanges) bool {
				return ch.background && slices.Equal(c.Background.Stops, []float64{0, 0.5, 1})
			},
		},
		{
			"full patch of defaults changes nothing",
			DefaultConfig().Patch(),
			func(c Config, ch configChanges) bool { return !ch.any() },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			ch := c.apply(tt.patch)
			if !tt.check(c, ch) {
				t.Errorf("config %+v changes %+v", c, ch)
			}
		})
	}
}

func TestConfigApplyComparesClampedValue(t *testing.T) {
	c := DefaultConfig()
	c.CreatureCount = 0
	c.WaveCount = 0
	c.WaterLevel = 0
	ch := c.apply(ConfigPatch{CreatureCount: ptr(-1), WaveCount: ptr(-4), WaterLevel: ptr(-0.5)})
	if ch.any() {
		t.Errorf("patch clamping to current values reported changes %+v", ch)
	}
}

func TestGradientNormalize(t *testing.T) {
	a, b, c := MustParseColor("#000000"), MustParseColor("#808080"), MustParseColor("#ffffff")
	tests := []struct {
		name   string
		colors []Color
		stops  []float64
		want   []float64
	}{
		{"nil stops", []Color{a, b, c}, nil, []float64{0, 0.5, 1}},
		{"mismatched length", []Color{a, b, c}, []float64{0, 1}, []float64{0, 0.5, 1}},
		{"unsorted", []Color{a, b, c}, []float64{0, 0.9, 0.1}, []float64{0, 0.5, 1}},
		{"kept", []Color{a, b, c}, []float64{0.1, 0.2, 0.9}, []float64{0.1, 0.2, 0.9}},
		{"clamped", []Color{a, c}, []float64{-0.5, 1.5}, []float64{0, 1}},
		{"single color", []Color{a}, nil, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGradient(tt.colors, tt.stops)
			if !slices.Equal(g.Stops, tt.want) {
				t.Errorf("stops = %v, want %v", g.Stops, tt.want)
			}
		})
	}

	if g := NewGradient(nil, nil); !g.Equal(defaultBackground) {
		t.Error("empty gradient did not fall back to the default")
	}
}

func TestGradientAt(t *testing.T) {
	black, white := MustParseColor("#000000"), MustParseColor("#ffffff")
	g := NewGradient([]Color{black, white}, []float64{0.25, 0.75})
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, 0},
		{0.5, 0.5},
		{0.75, 1},
		{1, 1},
	}
	for _, tt := range tests {
		got := g.At(tt.t)
		if d := got.R - tt.want; d > 1e-9 || d < -1e-9 {
			t.Errorf("At(%v).R = %v, want %v", tt.t, got.R, tt.want)
		}
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{CreatureCount: -1, CreatureSpeed: -2, RetargetInterval: -time.Second}
	c.normalize()
	if c.CreatureCount != 0 || c.CreatureSize != DefaultCreatureSize || c.CreatureSpeed != DefaultCreatureSpeed {
		t.Errorf("normalized = %+v", c)
	}
	if c.RetargetInterval != 0 {
		t.Errorf("RetargetInterval = %v, want 0", c.RetargetInterval)
	}
	if len(c.WaveColors) == 0 || len(c.Background.Colors) == 0 {
		t.Error("palettes left empty")
	}
}

func TestConfigNormalizeNaN(t *testing.T) {
	c := Config{CreatureSize: math.NaN(), CreatureSpeed: math.NaN(), WaterLevel: math.NaN()}
	c.normalize()
	if c.CreatureSize != DefaultCreatureSize || c.CreatureSpeed != DefaultCreatureSpeed || c.WaterLevel != DefaultWaterLevel {
		t.Errorf("normalized = %+v", c)
	}
	if ch := c.apply(ConfigPatch{CreatureCount: ptr(c.CreatureCount)}); ch.any() {
		t.Errorf("follow-up patch reported changes %+v", ch)
	}
}

package reef

import (
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied to every option a caller leaves out.
const (
	DefaultCreatureCount    = 1
	DefaultCreatureSize     = 40.0
	DefaultCreatureSpeed    = 3.0
	DefaultWaveCount        = 3
	DefaultParticleCount    = 30
	DefaultWaterLevel       = 0.2
	DefaultRetargetInterval = 3000 * time.Millisecond
	DefaultBackgroundFade   = 600 * time.Millisecond
)

// defaultBackground is the built-in deep-water gradient, top to bottom.
var defaultBackground = Gradient{
	Colors: []Color{
		MustParseColor("#0f2027"),
		MustParseColor("#203a43"),
		MustParseColor("#2c5364"),
	},
	Stops: []float64{0, 0.5, 1},
}

// defaultWaveColors is the built-in translucent wave palette.
var defaultWaveColors = []Color{
	MustParseColor("#0077be80"),
	MustParseColor("#0096c780"),
	MustParseColor("#48cae480"),
}

// Gradient is a vertical linear gradient. Stops are fractions of the surface
// height in [0, 1], one per color, in ascending order.
type Gradient struct {
	Colors []Color   `yaml:"colors" json:"colors"`
	Stops  []float64 `yaml:"stops,omitempty" json:"stops,omitempty"`
}

// NewGradient builds a gradient from colors and optional stops. When stops is
// nil or does not match colors in length, the colors are spaced evenly.
func NewGradient(colors []Color, stops []float64) Gradient {
	g := Gradient{Colors: slices.Clone(colors), Stops: slices.Clone(stops)}
	g.normalize()
	return g
}

func (g *Gradient) normalize() {
	if len(g.Colors) == 0 {
		g.Colors = slices.Clone(defaultBackground.Colors)
		g.Stops = slices.Clone(defaultBackground.Stops)
		return
	}
	if len(g.Stops) == len(g.Colors) && slices.IsSorted(g.Stops) {
		for i, s := range g.Stops {
			g.Stops[i] = clamp01(s)
		}
		return
	}
	g.Stops = make([]float64, len(g.Colors))
	if len(g.Colors) == 1 {
		return
	}
	for i := range g.Stops {
		g.Stops[i] = float64(i) / float64(len(g.Colors)-1)
	}
}

// At returns the gradient color at fraction t of the height.
func (g Gradient) At(t float64) Color {
	if len(g.Colors) == 0 {
		return Color{}
	}
	if t <= g.Stops[0] {
		return g.Colors[0]
	}
	for i := 1; i < len(g.Stops); i++ {
		if t <= g.Stops[i] {
			span := g.Stops[i] - g.Stops[i-1]
			if span <= 0 {
				return g.Colors[i]
			}
			return g.Colors[i-1].Lerp(g.Colors[i], (t-g.Stops[i-1])/span)
		}
	}
	return g.Colors[len(g.Colors)-1]
}

// Equal reports whether two gradients have the same colors and stops.
func (g Gradient) Equal(other Gradient) bool {
	return slices.Equal(g.Colors, other.Colors) && slices.Equal(g.Stops, other.Stops)
}

func (g Gradient) clone() Gradient {
	return Gradient{Colors: slices.Clone(g.Colors), Stops: slices.Clone(g.Stops)}
}

// Config is the complete set of scene tunables. A Config held by a Scene
// always has every field populated; see DefaultConfig.
type Config struct {
	CreatureCount     int
	CreatureSize      float64
	CreatureSpeed     float64
	WaveCount         int
	ParticleCount     int
	ParticlesEnabled  bool
	WaterLevel        float64 // water surface as a fraction of the height, from the top
	RetargetInterval  time.Duration
	BackgroundEnabled bool
	PursuitEnabled    bool
	Background        Gradient
	WaveColors        []Color
	// BackgroundFade is the crossfade duration when the gradient changes.
	BackgroundFade time.Duration
}

// DefaultConfig returns a Config with every option at its default.
func DefaultConfig() Config {
	return Config{
		CreatureCount:     DefaultCreatureCount,
		CreatureSize:      DefaultCreatureSize,
		CreatureSpeed:     DefaultCreatureSpeed,
		WaveCount:         DefaultWaveCount,
		ParticleCount:     DefaultParticleCount,
		ParticlesEnabled:  true,
		WaterLevel:        DefaultWaterLevel,
		RetargetInterval:  DefaultRetargetInterval,
		BackgroundEnabled: true,
		PursuitEnabled:    true,
		Background:        defaultBackground.clone(),
		WaveColors:        slices.Clone(defaultWaveColors),
		BackgroundFade:    DefaultBackgroundFade,
	}
}

// clone returns a deep copy so callers never alias the scene's slices.
func (c Config) clone() Config {
	c.Background = c.Background.clone()
	c.WaveColors = slices.Clone(c.WaveColors)
	return c
}

// normalize replaces out-of-domain values so that the config stays complete.
func (c *Config) normalize() {
	c.CreatureCount = max(c.CreatureCount, 0)
	c.WaveCount = max(c.WaveCount, 0)
	c.ParticleCount = max(c.ParticleCount, 0)
	if c.CreatureSize <= 0 || math.IsNaN(c.CreatureSize) {
		c.CreatureSize = DefaultCreatureSize
	}
	if c.CreatureSpeed < 0 || math.IsNaN(c.CreatureSpeed) {
		c.CreatureSpeed = DefaultCreatureSpeed
	}
	if math.IsNaN(c.WaterLevel) {
		c.WaterLevel = DefaultWaterLevel
	}
	c.WaterLevel = clamp01(c.WaterLevel)
	c.RetargetInterval = max(c.RetargetInterval, 0)
	c.BackgroundFade = max(c.BackgroundFade, 0)
	c.Background.normalize()
	if len(c.WaveColors) == 0 {
		c.WaveColors = slices.Clone(defaultWaveColors)
	}
}

// Patch returns a ConfigPatch with every field of c set.
func (c Config) Patch() ConfigPatch {
	c = c.clone()
	bg := c.Background
	return ConfigPatch{
		CreatureCount:     &c.CreatureCount,
		CreatureSize:      &c.CreatureSize,
		CreatureSpeed:     &c.CreatureSpeed,
		WaveCount:         &c.WaveCount,
		ParticleCount:     &c.ParticleCount,
		ParticlesEnabled:  &c.ParticlesEnabled,
		WaterLevel:        &c.WaterLevel,
		RetargetInterval:  &c.RetargetInterval,
		BackgroundEnabled: &c.BackgroundEnabled,
		PursuitEnabled:    &c.PursuitEnabled,
		Background:        &bg,
		WaveColors:        c.WaveColors,
		BackgroundFade:    &c.BackgroundFade,
	}
}

// ConfigPatch enumerates every recognized option as optional. Nil fields are
// left untouched when the patch is applied. WaveColors is applied when non-nil.
type ConfigPatch struct {
	CreatureCount     *int           `yaml:"creatureCount"`
	CreatureSize      *float64       `yaml:"creatureSize"`
	CreatureSpeed     *float64       `yaml:"creatureSpeed"`
	WaveCount         *int           `yaml:"waveCount"`
	ParticleCount     *int           `yaml:"particleCount"`
	ParticlesEnabled  *bool          `yaml:"particlesEnabled"`
	WaterLevel        *float64       `yaml:"waterLevel"`
	RetargetInterval  *time.Duration `yaml:"retargetInterval"`
	BackgroundEnabled *bool          `yaml:"backgroundEnabled"`
	PursuitEnabled    *bool          `yaml:"pursuitEnabled"`
	Background        *Gradient      `yaml:"background"`
	WaveColors        []Color        `yaml:"waveColors"`
	BackgroundFade    *time.Duration `yaml:"backgroundFade"`
}

// patchFile is the on-disk form of a ConfigPatch. Durations accept Go
// duration strings ("3s") and the *Ms keys accept plain milliseconds.
type patchFile struct {
	ConfigPatch        `yaml:",inline"`
	RetargetIntervalMs *int64 `yaml:"retargetIntervalMs"`
	BackgroundFadeMs   *int64 `yaml:"backgroundFadeMs"`
}

// ParsePatch decodes a YAML (or JSON) document into a ConfigPatch.
// Unrecognized keys are ignored.
func ParsePatch(data []byte) (ConfigPatch, error) {
	var f patchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ConfigPatch{}, fmt.Errorf("parse config patch: %w", err)
	}
	p := f.ConfigPatch
	if f.RetargetIntervalMs != nil {
		d := time.Duration(*f.RetargetIntervalMs) * time.Millisecond
		p.RetargetInterval = &d
	}
	if f.BackgroundFadeMs != nil {
		d := time.Duration(*f.BackgroundFadeMs) * time.Millisecond
		p.BackgroundFade = &d
	}
	return p, nil
}

// ParseConfig decodes a YAML config document over DefaultConfig. Options the
// document omits keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	p, err := ParsePatch(data)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	cfg.apply(p)
	cfg.normalize()
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// configChanges records which fields an applied patch actually changed.
type configChanges struct {
	creatureCount     bool
	creatureSize      bool
	creatureSpeed     bool
	waveCount         bool
	particleCount     bool
	particlesEnabled  bool
	waterLevel        bool
	retargetInterval  bool
	backgroundEnabled bool
	pursuitEnabled    bool
	background        bool
	waveColors        bool
	backgroundFade    bool
}

func (ch configChanges) any() bool {
	return ch != configChanges{}
}

// apply merges p into c field by field and reports which values changed.
// WaveColors is compared by value so an identical palette is not a change.
func (c *Config) apply(p ConfigPatch) configChanges {
	var ch configChanges
	if p.CreatureCount != nil && max(*p.CreatureCount, 0) != c.CreatureCount {
		c.CreatureCount = max(*p.CreatureCount, 0)
		ch.creatureCount = true
	}
	if p.CreatureSize != nil && *p.CreatureSize != c.CreatureSize && *p.CreatureSize > 0 {
		c.CreatureSize = *p.CreatureSize
		ch.creatureSize = true
	}
	if p.CreatureSpeed != nil && *p.CreatureSpeed != c.CreatureSpeed && *p.CreatureSpeed >= 0 {
		c.CreatureSpeed = *p.CreatureSpeed
		ch.creatureSpeed = true
	}
	if p.WaveCount != nil && max(*p.WaveCount, 0) != c.WaveCount {
		c.WaveCount = max(*p.WaveCount, 0)
		ch.waveCount = true
	}
	if p.ParticleCount != nil && max(*p.ParticleCount, 0) != c.ParticleCount {
		c.ParticleCount = max(*p.ParticleCount, 0)
		ch.particleCount = true
	}
	if p.ParticlesEnabled != nil && *p.ParticlesEnabled != c.ParticlesEnabled {
		c.ParticlesEnabled = *p.ParticlesEnabled
		ch.particlesEnabled = true
	}
	if p.WaterLevel != nil && !math.IsNaN(*p.WaterLevel) && clamp01(*p.WaterLevel) != c.WaterLevel {
		c.WaterLevel = clamp01(*p.WaterLevel)
		ch.waterLevel = true
	}
	if p.RetargetInterval != nil && max(*p.RetargetInterval, 0) != c.RetargetInterval {
		c.RetargetInterval = max(*p.RetargetInterval, 0)
		ch.retargetInterval = true
	}
	if p.BackgroundEnabled != nil && *p.BackgroundEnabled != c.BackgroundEnabled {
		c.BackgroundEnabled = *p.BackgroundEnabled
		ch.backgroundEnabled = true
	}
	if p.PursuitEnabled != nil && *p.PursuitEnabled != c.PursuitEnabled {
		c.PursuitEnabled = *p.PursuitEnabled
		ch.pursuitEnabled = true
	}
	if p.Background != nil {
		g := NewGradient(p.Background.Colors, p.Background.Stops)
		if !g.Equal(c.Background) {
			c.Background = g
			ch.background = true
		}
	}
	if p.WaveColors != nil && len(p.WaveColors) > 0 && !slices.Equal(p.WaveColors, c.WaveColors) {
		c.WaveColors = slices.Clone(p.WaveColors)
		ch.waveColors = true
	}
	if p.BackgroundFade != nil && max(*p.BackgroundFade, 0) != c.BackgroundFade {
		c.BackgroundFade = max(*p.BackgroundFade, 0)
		ch.backgroundFade = true
	}
	return ch
}

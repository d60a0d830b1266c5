package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ArenaConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// TickRate is the number of simulation steps per second.
	TickRate int `toml:"tick_rate"`
}

type ShotgunConfig struct {
	Pellets  int     `toml:"pellets"`
	Spread   float64 `toml:"spread"`
	Speed    float64 `toml:"speed"`
	Cooldown int     `toml:"cooldown"`
	Damage   int     `toml:"damage"`
	Range    float64 `toml:"range"`
}

type LaserConfig struct {
	Speed          float64 `toml:"speed"`
	Cooldown       int     `toml:"cooldown"`
	Damage         int     `toml:"damage"`
	MaxGenerations int     `toml:"max_generations"`
	Range          float64 `toml:"range"`
}

type BeamConfig struct {
	Speed    float64 `toml:"speed"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Cooldown int     `toml:"cooldown"`
	Damage   int     `toml:"damage"`
	MaxHits  int     `toml:"max_hits"`
	Range    float64 `toml:"range"`
}

type WeaponsConfig struct {
	Shotgun ShotgunConfig `toml:"shotgun"`
	Laser   LaserConfig   `toml:"laser"`
	Beam    BeamConfig    `toml:"beam"`
}

// HitStopConfig holds freeze durations in ticks.
type HitStopConfig struct {
	Shotgun int `toml:"shotgun"`
	Laser   int `toml:"laser"`
	Beam    int `toml:"beam"`
	KO      int `toml:"ko"`
}

type ShakeConfig struct {
	HitIntensity  float64 `toml:"hit_intensity"`
	HitDurationMS int     `toml:"hit_duration_ms"`
	KOIntensity   float64 `toml:"ko_intensity"`
	KODurationMS  int     `toml:"ko_duration_ms"`
}

type PlayerConfig struct {
	Speed  float64 `toml:"speed"`
	MaxHP  int     `toml:"max_hp"`
	Radius float64 `toml:"radius"`
	// ShotgunSpeedBonus multiplies movement speed for shotgun wielders.
	ShotgunSpeedBonus float64 `toml:"shotgun_speed_bonus"`
}

// EnemyConfig tunes CPU movement and ranges. CPU health comes from
// PlayerConfig.
type EnemyConfig struct {
	Speed         float64 `toml:"speed"`
	Radius        float64 `toml:"radius"`
	ApproachRange float64 `toml:"approach_range"`
	FireRange     float64 `toml:"fire_range"`
	EvadeTicks    int     `toml:"evade_ticks"`
}

type ProjectileConfig struct {
	PelletRadius   float64 `toml:"pellet_radius"`
	PelletLifespan int     `toml:"pellet_lifespan"`
	LaserRadius    float64 `toml:"laser_radius"`
	LaserLifespan  int     `toml:"laser_lifespan"`
	LaserTail      float64 `toml:"laser_tail"`
	LaserSpread    float64 `toml:"laser_spread"`
	BeamLifespan   int     `toml:"beam_lifespan"`
}

type ObstacleConfig struct {
	HorizontalBias float64 `toml:"horizontal_bias"`
	LongMin        int     `toml:"long_min"`
	LongSpan       int     `toml:"long_span"`
	ShortMin       int     `toml:"short_min"`
	ShortSpan      int     `toml:"short_span"`
	MarginX        float64 `toml:"margin_x"`
	MarginY        float64 `toml:"margin_y"`
	CenterGapX     float64 `toml:"center_gap_x"`
	CenterGapY     float64 `toml:"center_gap_y"`
}

type CoverConfig struct {
	Margin        float64 `toml:"margin"`
	ClampX        float64 `toml:"clamp_x"`
	ClampY        float64 `toml:"clamp_y"`
	ArriveRadius  float64 `toml:"arrive_radius"`
	Ticks         int     `toml:"ticks"`
	FallbackTicks int     `toml:"fallback_ticks"`
}

// LevelParams is one row of the CPU difficulty table.
type LevelParams struct {
	CooldownMultiplier  float64 `toml:"cooldown_multiplier"`
	AimJitter           float64 `toml:"aim_jitter"`
	FireStateDuration   int     `toml:"fire_state_duration"`
	ApproachWhileFiring bool    `toml:"approach_while_firing"`
	UseEvade            bool    `toml:"use_evade"`
	ApproachSpeedRatio  float64 `toml:"approach_speed_ratio"`
}

type TrainingConfig struct {
	DummyMaxHP  int     `toml:"dummy_max_hp"`
	DummyRadius float64 `toml:"dummy_radius"`
}

type Config struct {
	Arena      ArenaConfig      `toml:"arena"`
	Weapons    WeaponsConfig    `toml:"weapons"`
	HitStop    HitStopConfig    `toml:"hit_stop"`
	Shake      ShakeConfig      `toml:"shake"`
	Player     PlayerConfig     `toml:"player"`
	Enemy      EnemyConfig      `toml:"enemy"`
	Projectile ProjectileConfig `toml:"projectile"`
	Obstacles  ObstacleConfig   `toml:"obstacles"`
	Cover      CoverConfig      `toml:"cover"`
	Levels     [3]LevelParams   `toml:"levels"`
	Training   TrainingConfig   `toml:"training"`
}

func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:    480,
			Height:   854,
			TickRate: 60,
		},
		Weapons: WeaponsConfig{
			Shotgun: ShotgunConfig{
				Pellets:  12,
				Spread:   math.Pi / 5,
				Speed:    600,
				Cooldown: 40,
				Damage:   5,
				Range:    580,
			},
			Laser: LaserConfig{
				Speed:          1080,
				Cooldown:       30,
				Damage:         15,
				MaxGenerations: 1,
				Range:          600,
			},
			Beam: BeamConfig{
				Speed:    320,
				Width:    240,
				Height:   80,
				Cooldown: 60,
				Damage:   15,
				MaxHits:  5,
				Range:    500,
			},
		},
		HitStop: HitStopConfig{
			Shotgun: 2,
			Laser:   4,
			Beam:    6,
			KO:      120,
		},
		Shake: ShakeConfig{
			HitIntensity:  0.005,
			HitDurationMS: 80,
			KOIntensity:   0.015,
			KODurationMS:  400,
		},
		Player: PlayerConfig{
			Speed:             250,
			MaxHP:             150,
			Radius:            22,
			ShotgunSpeedBonus: 1.1,
		},
		Enemy: EnemyConfig{
			Speed:         200,
			Radius:        22,
			ApproachRange: 350,
			FireRange:     300,
			EvadeTicks:    2000 / 16,
		},
		Projectile: ProjectileConfig{
			PelletRadius:   4,
			PelletLifespan: 60,
			LaserRadius:    5,
			LaserLifespan:  100,
			LaserTail:      160,
			LaserSpread:    math.Pi / 6,
			BeamLifespan:   120,
		},
		Obstacles: ObstacleConfig{
			HorizontalBias: 0.6,
			LongMin:        90,
			LongSpan:       80,
			ShortMin:       22,
			ShortSpan:      12,
			MarginX:        40,
			MarginY:        100,
			CenterGapX:     20,
			CenterGapY:     60,
		},
		Cover: CoverConfig{
			Margin:        40,
			ClampX:        30,
			ClampY:        80,
			ArriveRadius:  20,
			Ticks:         120,
			FallbackTicks: 60,
		},
		Levels: [3]LevelParams{
			{
				CooldownMultiplier:  1.0,
				AimJitter:           0.30,
				FireStateDuration:   40,
				ApproachWhileFiring: false,
				UseEvade:            true,
				ApproachSpeedRatio:  0.8,
			},
			{
				CooldownMultiplier:  0.5,
				AimJitter:           0.15,
				FireStateDuration:   70,
				ApproachWhileFiring: false,
				UseEvade:            true,
				ApproachSpeedRatio:  0.9,
			},
			{
				CooldownMultiplier:  1.0,
				AimJitter:           0.0,
				FireStateDuration:   80,
				ApproachWhileFiring: true,
				UseEvade:            false,
				ApproachSpeedRatio:  1.0,
			},
		},
		Training: TrainingConfig{
			DummyMaxHP:  200,
			DummyRadius: 30,
		},
	}
}

// Level returns the difficulty row for level 1, 2 or 3. Out of range levels
// are clamped.
func (c Config) Level(level int) LevelParams {
	if level < 1 {
		level = 1
	}
	if level > len(c.Levels) {
		level = len(c.Levels)
	}
	return c.Levels[level-1]
}

// Step is the fixed simulation step in seconds.
func (c Config) Step() float64 {
	return 1 / float64(c.Arena.TickRate)
}

var (
	ErrArena    = errors.New("arena must have a positive size and tick rate")
	ErrCooldown = errors.New("weapon cooldowns must be at least one tick")
	ErrObstacle = errors.New("obstacle ranges do not fit in the arena quadrant")
	ErrLaser    = errors.New("laser max generations must be 0 or 1")
	ErrBeam     = errors.New("beam max hits must be at least one")
)

func (c Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 || c.Arena.TickRate <= 0 {
		return ErrArena
	}
	w := c.Weapons
	if w.Shotgun.Cooldown < 1 || w.Laser.Cooldown < 1 || w.Beam.Cooldown < 1 {
		return ErrCooldown
	}
	if w.Laser.MaxGenerations < 0 || w.Laser.MaxGenerations > 1 {
		return ErrLaser
	}
	if w.Beam.MaxHits < 1 {
		return ErrBeam
	}
	o := c.Obstacles
	longest := float64(o.LongMin + o.LongSpan)
	if o.MarginX+longest+o.CenterGapX >= c.Arena.Width/2 || o.MarginY+longest+o.CenterGapY >= c.Arena.Height/2 {
		return ErrObstacle
	}
	return nil
}

// Load reads a TOML file over Default. Keys missing from the file keep their
// default values.
func Load(fileName string) (Config, error) {
	cfg := Default()
	file, err := os.ReadFile(fileName)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", fileName, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by ARENA_CONFIG, or returns Default when the
// variable is unset.
func FromEnv() (Config, error) {
	path := os.Getenv("ARENA_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStep        = 0.01
	DefaultMaxIter     = 1000
	DefaultXInit       = 1e-6
	DefaultN           = 1.0
	DefaultTheta       = 0.1
	DefaultGravity     = 9.81
	DefaultLength      = 1.0
	DefaultHorizon     = 3.0
	DefaultTarget      = 3.0
	DefaultIterations  = 20
	DefaultStopPolicy  = StopAngle
	DefaultTargetAngle = math.Pi / 2
)

// Stop policies for pendulum runs.
const (
	StopHorizon = "horizon"
	StopAngle   = "angle"
)

type Config struct {
	Model         string          `yaml:"model"`
	Step          float64         `yaml:"step"`
	MaxIter       int             `yaml:"max_iter"`
	ValidateState bool            `yaml:"validate"`
	InitState     InitStateConfig `yaml:"init_state"`
	Polytrope     PolytropeConfig `yaml:"polytrope"`
	Pendulum      PendulumConfig  `yaml:"pendulum"`
	Shoot         ShootConfig     `yaml:"shoot"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type PolytropeConfig struct {
	N float64 `yaml:"n"`
}

type PendulumConfig struct {
	Theta   float64 `yaml:"theta"`
	Gravity float64 `yaml:"gravity"`
	Length  float64 `yaml:"length"`
	Horizon float64 `yaml:"horizon"`
}

type ShootConfig struct {
	Low         float64 `yaml:"low"`
	High        float64 `yaml:"high"`
	Target      float64 `yaml:"target"`
	Iterations  int     `yaml:"iterations"`
	Stop        string  `yaml:"stop"`
	TargetAngle float64 `yaml:"target_angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "polytrope",
		Step:    DefaultStep,
		MaxIter: DefaultMaxIter,
		InitState: InitStateConfig{
			X: DefaultXInit,
			Y: 1,
		},
		Polytrope: PolytropeConfig{N: DefaultN},
		Pendulum: PendulumConfig{
			Theta:   DefaultTheta,
			Gravity: DefaultGravity,
			Length:  DefaultLength,
			Horizon: DefaultHorizon,
		},
		Shoot: ShootConfig{
			Low:         0,
			High:        math.Pi / 2,
			Target:      DefaultTarget,
			Iterations:  DefaultIterations,
			Stop:        DefaultStopPolicy,
			TargetAngle: DefaultTargetAngle,
		},
	}
}

// PendulumInit is the initial state of a pendulum run: rod at rest at x = 0.
func PendulumInit() InitStateConfig {
	return InitStateConfig{}
}

func Load(path string) (*Config, error) {
	return LoadAs(path, "")
}

// LoadAs reads a config file. model names the kind whose defaults apply when
// the file has no model key.
func LoadAs(path, model string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// The initial state default depends on the model, so peek at it first.
	var head struct {
		Model string `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Model != "" {
		model = head.Model
	}

	cfg := DefaultConfig()
	if model != "" {
		cfg.Model = model
	}
	if cfg.Model == "pendulum" {
		cfg.InitState = PendulumInit()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", c.Step)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("max_iter must be positive, got %d", c.MaxIter)
	}
	if c.Model == "polytrope" && c.InitState.X <= 0 {
		return fmt.Errorf("polytrope integration must start at x > 0, got %v: %w", c.InitState.X, dynamo.ErrSingular)
	}
	if !(c.Shoot.Low < c.Shoot.High) {
		return fmt.Errorf("shoot bracket [%v, %v] is inverted", c.Shoot.Low, c.Shoot.High)
	}
	switch c.Shoot.Stop {
	case StopHorizon, StopAngle:
	default:
		return fmt.Errorf("unknown stop policy: %s", c.Shoot.Stop)
	}
	return nil
}

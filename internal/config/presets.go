package config

import "sort"

var Presets = map[string]map[string]*Config{
	"polytrope": {
		"uniform": polytrope(0, DefaultStep),
		"linear":  polytrope(1, DefaultStep),
		"neutron": polytrope(1.5, DefaultStep),
		"sun":     polytrope(3, DefaultStep),
		"fine":    polytrope(3, 0.001),
	},
	"pendulum": {
		"reference": pendulum(StopHorizon, DefaultStep, DefaultMaxIter, 20),
		"lift":      pendulum(StopAngle, DefaultStep, DefaultMaxIter, 20),
		"fine":      pendulum(StopAngle, 0.001, 10000, 30),
	},
}

func polytrope(n, step float64) *Config {
	cfg := DefaultConfig()
	cfg.Step = step
	cfg.MaxIter = int(10 / step)
	cfg.Polytrope.N = n
	return cfg
}

func pendulum(stop string, step float64, maxIter, iterations int) *Config {
	cfg := DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Step = step
	cfg.MaxIter = maxIter
	cfg.InitState = PendulumInit()
	cfg.Shoot.Stop = stop
	cfg.Shoot.Iterations = iterations
	return cfg
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

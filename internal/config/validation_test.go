package config

import "testing"

func TestBatteryValidation(t *testing.T) {
	cfg := Default()
	cfg.Battery.CapacityMAH = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for zero capacity")
	}

	cfg = Default()
	cfg.Battery.DisturbanceRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for disturbance_rate above 1")
	}
}

func TestControllerValidation(t *testing.T) {
	cfg := Default()
	cfg.Controller.GainB = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for zero gain_b")
	}

	cfg = Default()
	cfg.Controller.DeltaBaseline = "sideways"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for unknown delta_baseline")
	}
}

func TestLearnerValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero learning rate", func(c *Config) { c.Learner.LearningRate = 0 }},
		{"discount of 1", func(c *Config) { c.Learner.Discount = 1 }},
		{"negative exploration", func(c *Config) { c.Learner.Exploration = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSimulationValidation(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Steps = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for zero steps")
	}

	cfg = Default()
	cfg.Simulation.TimerWindows = []WindowConfig{{StartSec: 100, EndSec: 50}}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for inverted timer window")
	}
}

func TestLoggingValidation(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for unknown log level")
	}

	cfg = Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for unknown log format")
	}
}

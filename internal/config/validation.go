package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Battery.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("battery: %w", err))
	}

	if err := c.Controller.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controller: %w", err))
	}

	if err := c.Learner.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("learner: %w", err))
	}

	if err := c.Simulation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("simulation: %w", err))
	}

	if err := c.Live.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("live: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (b *BatteryConfig) Validate() error {
	var errs []error

	if b.CapacityMAH <= 0 {
		errs = append(errs, fmt.Errorf("capacity_mah must be positive, got %v", b.CapacityMAH))
	}

	if b.InternalResistance <= 0 {
		errs = append(errs, fmt.Errorf("internal_resistance must be positive, got %v", b.InternalResistance))
	}

	if b.BaseLoadOhms <= 0 {
		errs = append(errs, fmt.Errorf("base_load_ohms must be positive, got %v", b.BaseLoadOhms))
	}

	if b.DisturbanceRate < 0 || b.DisturbanceRate > 1 {
		errs = append(errs, fmt.Errorf("disturbance_rate must be between 0 and 1, got %v", b.DisturbanceRate))
	}

	if b.ThermalMass <= 0 {
		errs = append(errs, fmt.Errorf("thermal_mass must be positive, got %v", b.ThermalMass))
	}

	if b.CoolingRate < 0 {
		errs = append(errs, fmt.Errorf("cooling_rate must be non-negative, got %v", b.CoolingRate))
	}

	return errors.Join(errs...)
}

func (c *ControllerConfig) Validate() error {
	var errs []error

	if c.GainB == 0 {
		errs = append(errs, fmt.Errorf("gain_b must be nonzero"))
	}

	validBaselines := map[string]bool{
		"post_update": true,
		"pre_update":  true,
	}
	if !validBaselines[c.DeltaBaseline] {
		errs = append(errs, fmt.Errorf("invalid delta_baseline: %s (valid: post_update, pre_update)", c.DeltaBaseline))
	}

	return errors.Join(errs...)
}

func (l *LearnerConfig) Validate() error {
	var errs []error

	if l.LearningRate <= 0 || l.LearningRate > 1 {
		errs = append(errs, fmt.Errorf("learning_rate must be in (0, 1], got %v", l.LearningRate))
	}

	if l.Discount < 0 || l.Discount >= 1 {
		errs = append(errs, fmt.Errorf("discount must be in [0, 1), got %v", l.Discount))
	}

	if l.Exploration < 0 || l.Exploration > 1 {
		errs = append(errs, fmt.Errorf("exploration must be between 0 and 1, got %v", l.Exploration))
	}

	return errors.Join(errs...)
}

func (s *SimulationConfig) Validate() error {
	var errs []error

	if s.Steps < 1 {
		errs = append(errs, fmt.Errorf("steps must be at least 1, got %d", s.Steps))
	}

	if s.TimeStepSec <= 0 {
		errs = append(errs, fmt.Errorf("time_step_sec must be positive, got %v", s.TimeStepSec))
	}

	for i, w := range s.TimerWindows {
		if w.EndSec <= w.StartSec {
			errs = append(errs, fmt.Errorf("timer_windows[%d]: end_sec must be after start_sec", i))
		}
	}

	return errors.Join(errs...)
}

func (l *LiveConfig) Validate() error {
	if l.IntervalMS < 100 {
		return fmt.Errorf("interval_ms must be at least 100, got %d", l.IntervalMS)
	}
	if l.BusyThresholdPercent < 0 || l.BusyThresholdPercent > 100 {
		return fmt.Errorf("busy_threshold_percent must be between 0 and 100, got %v", l.BusyThresholdPercent)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}

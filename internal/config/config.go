package config

type Config struct {
	Battery    BatteryConfig    `yaml:"battery"`
	Controller ControllerConfig `yaml:"controller"`
	Learner    LearnerConfig    `yaml:"learner"`
	Simulation SimulationConfig `yaml:"simulation"`
	Live       LiveConfig       `yaml:"live"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BatteryConfig describes the simulated pack and load.
type BatteryConfig struct {
	CapacityMAH        float64 `yaml:"capacity_mah"`
	InternalResistance float64 `yaml:"internal_resistance"`
	BaseLoadOhms       float64 `yaml:"base_load_ohms"`
	// DisturbanceRate is the per-step probability of a load event toggling.
	DisturbanceRate float64 `yaml:"disturbance_rate"`
	ThermalMass     float64 `yaml:"thermal_mass"`
	CoolingRate     float64 `yaml:"cooling_rate"`
	AmbientTemp     float64 `yaml:"ambient_temp"`
}

// ControllerConfig holds the predictive controller's plant gains and the
// power-mode comparison baseline.
type ControllerConfig struct {
	GainA float64 `yaml:"gain_a"`
	GainB float64 `yaml:"gain_b"`
	// DeltaBaseline: post_update (literal) or pre_update.
	DeltaBaseline string `yaml:"delta_baseline"`
}

// LearnerConfig holds the Q-learner's hyperparameters.
type LearnerConfig struct {
	LearningRate float64 `yaml:"learning_rate"`
	Discount     float64 `yaml:"discount"`
	Exploration  float64 `yaml:"exploration"`
}

// WindowConfig is one active interval for the timer baseline, in simulated
// seconds.
type WindowConfig struct {
	StartSec float64 `yaml:"start_sec"`
	EndSec   float64 `yaml:"end_sec"`
}

// SimulationConfig holds run parameters.
type SimulationConfig struct {
	Steps       int     `yaml:"steps"`
	TimeStepSec float64 `yaml:"time_step_sec"`
	// Seed drives every pseudo-random source in a run. The same seed
	// reproduces the same run exactly; -1 means seed from the clock.
	Seed        int64 `yaml:"seed"`
	KeepRecords bool  `yaml:"keep_records"`
	// TimerWindows is the schedule for the timer-based comparison baseline.
	TimerWindows []WindowConfig `yaml:"timer_windows"`
}

// LiveConfig holds parameters for the host-load-driven mode.
type LiveConfig struct {
	IntervalMS           int     `yaml:"interval_ms"`
	BusyThresholdPercent float64 `yaml:"busy_threshold_percent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

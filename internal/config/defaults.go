package config

func Default() *Config {
	return &Config{
		Battery: BatteryConfig{
			CapacityMAH:        2000,
			InternalResistance: 0.3,
			BaseLoadOhms:       10,
			DisturbanceRate:    0.05,
			ThermalMass:        15,
			CoolingRate:        0.08,
			AmbientTemp:        25,
		},
		Controller: ControllerConfig{
			GainA:         0.9,
			GainB:         0.8,
			DeltaBaseline: "post_update",
		},
		Learner: LearnerConfig{
			LearningRate: 0.1,
			Discount:     0.9,
			Exploration:  0.1,
		},
		Simulation: SimulationConfig{
			Steps:       3600,
			TimeStepSec: 1.0,
			Seed:        42,
			KeepRecords: false,
			TimerWindows: []WindowConfig{
				{StartSec: 900, EndSec: 2700},
			},
		},
		Live: LiveConfig{
			IntervalMS:           1000,
			BusyThresholdPercent: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

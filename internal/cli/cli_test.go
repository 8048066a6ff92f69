package cli

import (
	"testing"

	"github.com/haskel/voltfox/internal/config"
	"github.com/haskel/voltfox/internal/decision"
)

func TestLoadConfig_DefaultWhenNoFile(t *testing.T) {
	cfgFile = ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Battery.CapacityMAH != 2000 {
		t.Errorf("expected default battery config, got capacity %v", cfg.Battery.CapacityMAH)
	}
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	cfgFile = "/nonexistent/voltfox.yaml"
	defer func() { cfgFile = "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestManagerConfig_MapsBaseline(t *testing.T) {
	cfg := config.Default()

	mc := managerConfig(cfg, 3)
	if mc.DeltaBaseline != decision.DeltaPostUpdate {
		t.Errorf("expected post_update baseline by default, got %v", mc.DeltaBaseline)
	}
	if mc.Seed != 3 {
		t.Errorf("expected seed 3, got %d", mc.Seed)
	}

	cfg.Controller.DeltaBaseline = "pre_update"
	mc = managerConfig(cfg, 3)
	if mc.DeltaBaseline != decision.DeltaPreUpdate {
		t.Errorf("expected pre_update baseline, got %v", mc.DeltaBaseline)
	}
}

func TestManagerConfig_MapsLearnerParams(t *testing.T) {
	cfg := config.Default()
	cfg.Learner.Exploration = 0.3

	mc := managerConfig(cfg, 0)
	if mc.Learner.Exploration != 0.3 {
		t.Errorf("expected exploration 0.3, got %v", mc.Learner.Exploration)
	}
	if mc.GainA != cfg.Controller.GainA || mc.GainB != cfg.Controller.GainB {
		t.Errorf("expected gains (%v, %v), got (%v, %v)",
			cfg.Controller.GainA, cfg.Controller.GainB, mc.GainA, mc.GainB)
	}
}

func TestPlantConfig_MapsBatterySection(t *testing.T) {
	cfg := config.Default()
	cfg.Battery.BaseLoadOhms = 22

	pc := plantConfig(cfg)
	if pc.BaseLoadOhms != 22 {
		t.Errorf("expected base load 22, got %v", pc.BaseLoadOhms)
	}
	if pc.CapacityMAH != cfg.Battery.CapacityMAH {
		t.Errorf("expected capacity %v, got %v", cfg.Battery.CapacityMAH, pc.CapacityMAH)
	}
}

func TestTimerWindows_Mapping(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.TimerWindows = []config.WindowConfig{
		{StartSec: 0, EndSec: 60},
		{StartSec: 120, EndSec: 240},
	}

	windows := timerWindows(cfg)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[1].Start != 120 || windows[1].End != 240 {
		t.Errorf("expected window {120 240}, got %+v", windows[1])
	}
}

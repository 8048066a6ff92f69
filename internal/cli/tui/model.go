package tui

import (
	"math/rand"
	"time"

	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/logger"
	"github.com/haskel/voltfox/internal/plant"
)

// Config holds dashboard configuration.
type Config struct {
	Plant   plant.Config
	Manager decision.Config
	Seed    int64
	// DT is the simulated seconds per control cycle.
	DT       float64
	Interval time.Duration
	// StepsPerTick is how many control cycles run per refresh.
	StepsPerTick int
}

// Model represents the dashboard state.
type Model struct {
	config Config

	dev     *plant.Device
	manager *decision.Manager

	// Latest cycle outcome
	reading plant.Reading
	last    decision.Decision

	// UI state
	width  int
	height int
	paused bool
	forced bool // user-forced disturbance
	err    error
	cycles int64
}

// NewModel creates a dashboard over a fresh device and controller.
func NewModel(cfg Config) Model {
	m := Model{config: cfg}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.dev = plant.New(m.config.Plant, rand.New(rand.NewSource(m.config.Seed)))
	m.manager = decision.NewManager(m.config.Manager, logger.Discard())
	m.reading = m.dev.Step(m.config.DT, 0, false)
	m.last = decision.Decision{}
	m.cycles = 0
	m.err = nil
	m.forced = false
}

// step advances the simulation by one control cycle.
func (m *Model) step() {
	if m.forced {
		m.dev.SetDisturbance(true)
	}

	d, err := m.manager.RunCycle(decision.Observation{
		Voltage:     m.reading.Voltage,
		Disturbance: m.reading.Disturbance || m.forced,
		SoC:         m.reading.SoC,
	})
	if err != nil {
		m.err = err
		m.paused = true
		return
	}

	m.last = d
	m.reading = m.dev.Step(m.config.DT, d.Duty, d.PowerMode == decision.PowerModeHigh)
	m.cycles++
}

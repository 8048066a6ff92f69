package decision

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/haskel/voltfox/internal/controller"
	"github.com/haskel/voltfox/internal/estimator"
	"github.com/haskel/voltfox/internal/policy"
)

// Voltage targets in volts. Under disturbance the controller aims for the
// full rail to recover sag as fast as possible; otherwise it holds a lower
// setpoint to save energy.
const (
	normalTarget      = 7.5
	disturbanceTarget = 8.4
)

// overridePenalty is the effort penalty forced during a disturbance:
// near-zero, so tracking dominates and recovery is immediate.
const overridePenalty = 0.01

// energyCostCoeff scales the estimated current draw in the reward's energy
// penalty term.
const energyCostCoeff = 0.18

// dutyDeltaThreshold is the duty-cycle change above which the compute side
// is kept in high-power mode.
const dutyDeltaThreshold = 0.01

// Config holds manager construction parameters.
type Config struct {
	// Seed initializes the single pseudo-random source behind exploration
	// draws. Two managers with equal seeds and equal observation sequences
	// produce identical decisions.
	Seed int64
	// Learner holds the Q-learner hyperparameters. Zero value means
	// policy.DefaultParams.
	Learner policy.Params
	// GainA and GainB are the controller's plant gains. Both zero means
	// the controller defaults.
	GainA float64
	GainB float64
	// DeltaBaseline selects the power-mode comparison baseline.
	DeltaBaseline DeltaBaseline
}

// Manager runs one control cycle per observation, sequencing estimation,
// reward attribution, action selection, duty-cycle computation, and the
// power-mode decision. Each manager owns its estimator, controller, and
// learner exclusively; concurrent streams need one manager each.
type Manager struct {
	filter  *estimator.SagFilter
	ctrl    *controller.DutyController
	learner *policy.Learner
	logger  *slog.Logger

	baseline DeltaBaseline

	// Credit-assignment bookkeeping: the action the policy chose last
	// cycle, before any safety override. Rewards attach to the chosen
	// action, not the applied one.
	lastBin    int
	lastAction policy.Action

	cycles int64
}

// NewManager builds a manager with a fresh belief, a full-output controller,
// and an all-zero value table.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	params := cfg.Learner
	if params == (policy.Params{}) {
		params = policy.DefaultParams()
	}
	a, b := cfg.GainA, cfg.GainB
	if a == 0 && b == 0 {
		a, b = controller.DefaultGainA, controller.DefaultGainB
	}

	m := &Manager{
		filter:   estimator.NewSagFilter(),
		ctrl:     controller.NewWithGains(a, b),
		learner:  policy.NewLearner(params, rand.New(rand.NewSource(cfg.Seed))),
		logger:   logger,
		baseline: cfg.DeltaBaseline,

		// Neutral starting point: full pack, balanced effort.
		lastBin:    policy.Discretize(100),
		lastAction: policy.ActionBalanced,
	}
	return m
}

// RunCycle consumes one observation and produces one decision. Cycles are
// strictly sequential; the caller must invoke it once per time step.
func (m *Manager) RunCycle(obs Observation) (Decision, error) {
	if err := obs.Validate(); err != nil {
		return Decision{}, err
	}
	m.cycles++

	// Estimate hidden load current from voltage sag.
	ocv := EmptyVoltage + (FullVoltage-EmptyVoltage)*obs.SoC/100
	current := m.filter.Update(obs.Voltage, ocv)

	bin := policy.Discretize(obs.SoC)

	// Score the action chosen last cycle using this cycle's outcome.
	// Voltage stability earns reward; current draw costs it, and the cost
	// climbs as the pack depletes.
	penaltyFactor := (110 - obs.SoC) / 4
	reward := obs.Voltage/FullVoltage - penaltyFactor*current*energyCostCoeff

	if err := m.learner.Learn(m.lastBin, m.lastAction, reward, bin); err != nil {
		return Decision{}, fmt.Errorf("reward attribution: %w", err)
	}

	action := m.learner.ChooseAction(bin)
	m.lastBin = bin
	m.lastAction = action

	// Safety override: a disturbance forces minimal effort penalty so the
	// controller recovers voltage immediately. The bookkeeping above keeps
	// the chosen action; only the applied penalty changes.
	penalty := action.Penalty()
	target := normalTarget
	if obs.Disturbance {
		penalty = overridePenalty
		target = disturbanceTarget
	}

	prevDuty := m.ctrl.Duty()
	duty, err := m.ctrl.Compute(target/FullVoltage, obs.Voltage/FullVoltage, penalty)
	if err != nil {
		return Decision{}, fmt.Errorf("duty computation: %w", err)
	}

	base := m.ctrl.Duty()
	if m.baseline == DeltaPreUpdate {
		base = prevDuty
	}
	delta := math.Abs(duty - base)

	mode := PowerModeLow
	if obs.Disturbance || delta > dutyDeltaThreshold {
		mode = PowerModeHigh
	}
	m.logger.Debug("cycle complete",
		"cycle", m.cycles,
		"soc", obs.SoC,
		"voltage", obs.Voltage,
		"current_est", current,
		"action", action.String(),
		"disturbance", obs.Disturbance,
		"duty", duty,
		"mode", string(mode),
	)

	return Decision{Duty: duty, PowerMode: mode, Current: current}, nil
}

// Cycles returns the number of completed control cycles.
func (m *Manager) Cycles() int64 {
	return m.cycles
}

// Estimator returns the manager's sag filter.
func (m *Manager) Estimator() *estimator.SagFilter {
	return m.filter
}

// Controller returns the manager's duty-cycle controller.
func (m *Manager) Controller() *controller.DutyController {
	return m.ctrl
}

// Learner returns the manager's policy learner.
func (m *Manager) Learner() *policy.Learner {
	return m.learner
}

// LastAction returns the most recently selected (not overridden) action.
func (m *Manager) LastAction() policy.Action {
	return m.lastAction
}

package policy

import (
	"errors"
	"fmt"
	"math/rand"
)

// Action is one of the fixed effort-penalty levels the learner can hand to
// the duty-cycle controller. Declaration order is the tie-break order: when
// value estimates are equal, the first-declared action wins.
type Action int

const (
	// ActionAggressive chases the voltage target with minimal effort penalty.
	ActionAggressive Action = iota
	// ActionBalanced trades tracking against actuation effort evenly.
	ActionBalanced
	// ActionConservative holds the previous duty cycle unless the error is large.
	ActionConservative

	numActions
)

var penalties = [numActions]float64{0.1, 1.0, 5.0}

// Penalty returns the controller effort penalty this action stands for.
func (a Action) Penalty() float64 {
	return penalties[a]
}

func (a Action) String() string {
	switch a {
	case ActionAggressive:
		return "aggressive"
	case ActionBalanced:
		return "balanced"
	case ActionConservative:
		return "conservative"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a member of the fixed action set.
func (a Action) Valid() bool {
	return a >= 0 && a < numActions
}

// ErrUnknownAction reports a value-table access with an action outside the
// fixed set. It indicates a caller bug, not a recoverable condition.
var ErrUnknownAction = errors.New("action outside the fixed action set")

// BinWidth is the state-of-charge discretization step in percent.
const BinWidth = 20

// Charge 0-100% floor-divides into bins 0,20,40,60,80, with 100 landing in
// its own bin.
const numBins = 100/BinWidth + 1

// Discretize maps a state-of-charge percentage onto its bin label.
func Discretize(soc float64) int {
	return int(soc) / BinWidth * BinWidth
}

// Params holds the tabular learner's fixed hyperparameters.
type Params struct {
	LearningRate float64
	Discount     float64
	Exploration  float64
}

// DefaultParams returns the production hyperparameters.
func DefaultParams() Params {
	return Params{
		LearningRate: 0.1,
		Discount:     0.9,
		Exploration:  0.1,
	}
}

// Learner is a tabular epsilon-greedy Q-learner over discretized charge
// bins. The state space is small and fixed, so the table is a dense array
// indexed by bin and action; an untouched row is all zeros, which is exactly
// the lazily-initialized default.
//
// All randomness (exploration draws) comes from the injected source, so a
// fixed seed makes a whole run reproducible. Not safe for concurrent use;
// one learner belongs to one control stream.
type Learner struct {
	table  [numBins][numActions]float64
	params Params
	rng    *rand.Rand
}

// NewLearner returns a learner with an all-zero value table drawing
// exploration randomness from rng.
func NewLearner(params Params, rng *rand.Rand) *Learner {
	return &Learner{params: params, rng: rng}
}

func binIndex(bin int) int {
	idx := bin / BinWidth
	if idx < 0 {
		return 0
	}
	if idx >= numBins {
		return numBins - 1
	}
	return idx
}

// ChooseAction picks the next action for a charge bin: a uniformly random
// action with probability Exploration, otherwise the action with the highest
// value estimate. Ties go to the first-declared action.
func (l *Learner) ChooseAction(bin int) Action {
	if l.rng.Float64() < l.params.Exploration {
		return Action(l.rng.Intn(int(numActions)))
	}

	row := &l.table[binIndex(bin)]
	best := ActionAggressive
	for a := ActionBalanced; a < numActions; a++ {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}

// Learn applies the temporal-difference update for taking action in bin,
// observing reward, and landing in nextBin:
//
//	Q[bin][a] += lr * (reward + discount*max(Q[nextBin]) - Q[bin][a])
func (l *Learner) Learn(bin int, action Action, reward float64, nextBin int) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}

	row := &l.table[binIndex(bin)]
	next := &l.table[binIndex(nextBin)]

	nextMax := next[0]
	for a := ActionBalanced; a < numActions; a++ {
		if next[a] > nextMax {
			nextMax = next[a]
		}
	}

	row[action] += l.params.LearningRate * (reward + l.params.Discount*nextMax - row[action])
	return nil
}

// Value returns the current estimate for taking action in bin. Used by
// diagnostics and the dashboard; it never mutates the table.
func (l *Learner) Value(bin int, action Action) float64 {
	if !action.Valid() {
		return 0
	}
	return l.table[binIndex(bin)][action]
}

// Bins lists the bin labels in ascending order.
func Bins() []int {
	bins := make([]int, numBins)
	for i := range bins {
		bins[i] = i * BinWidth
	}
	return bins
}

// Actions lists the fixed action set in declaration order.
func Actions() []Action {
	return []Action{ActionAggressive, ActionBalanced, ActionConservative}
}

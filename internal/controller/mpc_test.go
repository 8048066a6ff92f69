package controller

import (
	"errors"
	"math"
	"testing"
)

func TestDutyController_OutputAlwaysInBounds(t *testing.T) {
	c := New()

	targets := []float64{-1, 0, 0.5, 0.892, 1, 10}
	currents := []float64{0, 0.3, 0.7, 1, 2}
	penalties := []float64{0, 0.01, 0.1, 1, 5, 100}

	for _, target := range targets {
		for _, current := range currents {
			for _, penalty := range penalties {
				duty, err := c.Compute(target, current, penalty)
				if err != nil {
					t.Fatalf("Compute(%v, %v, %v): unexpected error: %v", target, current, penalty, err)
				}
				if duty < MinDuty || duty > MaxDuty {
					t.Errorf("Compute(%v, %v, %v) = %v, outside [%v, %v]",
						target, current, penalty, duty, MinDuty, MaxDuty)
				}
			}
		}
	}
}

func TestDutyController_HighPenaltySuppressesEffort(t *testing.T) {
	c := New()

	// Establish a previous duty cycle away from the bounds.
	prev, err := c.Compute(0.5, 0.9, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With a huge effort penalty the optimum collapses onto the previous
	// duty cycle regardless of tracking error.
	duty, err := c.Compute(1.0, 0.2, 1e6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(duty-prev) > 1e-3 {
		t.Errorf("expected duty near previous %v under large penalty, got %v", prev, duty)
	}
}

func TestDutyController_LowPenaltyChasesTarget(t *testing.T) {
	aggressive := New()
	conservative := New()

	// Same large tracking error, different effort penalties. The aggressive
	// controller must move further from the initial duty cycle.
	dutyA, err := aggressive.Compute(0.3, 0.9, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dutyC, err := conservative.Compute(0.3, 0.9, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dutyA >= dutyC {
		t.Errorf("expected aggressive duty %v below conservative duty %v for a low target", dutyA, dutyC)
	}
}

func TestDutyController_DegenerateGains(t *testing.T) {
	c := NewWithGains(0, 0)

	_, err := c.Compute(0.9, 0.9, 0)
	if !errors.Is(err, ErrDegenerateGains) {
		t.Errorf("expected ErrDegenerateGains, got %v", err)
	}
}

func TestDutyController_NonFinitePenalty(t *testing.T) {
	c := New()

	_, err := c.Compute(0.9, 0.9, math.Inf(1))
	if !errors.Is(err, ErrDegenerateGains) {
		t.Errorf("expected ErrDegenerateGains for infinite penalty, got %v", err)
	}
}

func TestDutyController_StoresLastDuty(t *testing.T) {
	c := New()

	if c.Duty() != MaxDuty {
		t.Errorf("expected initial duty %v, got %v", MaxDuty, c.Duty())
	}

	duty, err := c.Compute(0.5, 0.9, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Duty() != duty {
		t.Errorf("Duty() = %v, want last computed %v", c.Duty(), duty)
	}
}

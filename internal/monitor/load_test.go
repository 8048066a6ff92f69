package monitor

import "testing"

func TestLoadSampler_Sample(t *testing.T) {
	s := NewLoadSampler(50)

	percent, _, err := s.Sample()
	if err != nil {
		t.Skipf("cpu usage not readable on this host: %v", err)
	}

	if percent < 0 || percent > 100 {
		t.Errorf("cpu percent %v outside [0, 100]", percent)
	}
}

func TestLoadSampler_BusyFollowsThreshold(t *testing.T) {
	// Threshold 0: any nonzero load reads as busy; threshold above 100
	// never does.
	never := NewLoadSampler(101)

	_, busy, err := never.Sample()
	if err != nil {
		t.Skipf("cpu usage not readable on this host: %v", err)
	}
	if busy {
		t.Errorf("threshold above 100%% must never report busy")
	}
}

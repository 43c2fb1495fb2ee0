package engine

import "testing"

func TestSessionScoreMonotonic(t *testing.T) {
	s := NewSession()

	s.AddScore(1)
	s.AddScore(2)
	if s.Score() != 3 {
		t.Errorf("Score() = %d, expected 3", s.Score())
	}

	s.AddScore(-5) // negative deltas are ignored
	if s.Score() != 3 {
		t.Errorf("Score() = %d after negative delta, expected 3", s.Score())
	}
}

func TestSessionScoreFrozenAfterTerminal(t *testing.T) {
	s := NewSession()
	s.AddScore(4)
	s.Lose()

	s.AddScore(10)
	if s.Score() != 4 {
		t.Errorf("Score() = %d after loss, expected frozen at 4", s.Score())
	}
}

func TestSessionTerminalPhasesAbsorbing(t *testing.T) {
	tests := []struct {
		name  string
		first func(*Session)
		then  func(*Session)
		want  Phase
	}{
		{"win then lose stays won", (*Session).Win, (*Session).Lose, PhaseWon},
		{"lose then win stays lost", (*Session).Lose, (*Session).Win, PhaseLost},
		{"win twice stays won", (*Session).Win, (*Session).Win, PhaseWon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession()
			tc.first(s)
			tc.then(s)
			if s.Phase() != tc.want {
				t.Errorf("Phase() = %v, expected %v", s.Phase(), tc.want)
			}
			if s.Running() {
				t.Error("Running() should be false in a terminal phase")
			}
		})
	}
}

func TestSessionInitialState(t *testing.T) {
	s := NewSession()
	if !s.Running() {
		t.Error("a new session should be running")
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected PhaseRunning", s.Phase())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	if PhaseRunning.Terminal() {
		t.Error("PhaseRunning must not be terminal")
	}
	if !PhaseWon.Terminal() || !PhaseLost.Terminal() {
		t.Error("PhaseWon and PhaseLost must be terminal")
	}
}

package engine

// Phase is the game-run state machine: a run starts Running and ends in
// exactly one of the terminal phases. Won and Lost are absorbing.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Session tracks the score and phase of one game run. The score never
// decreases and freezes as soon as a terminal phase is reached; terminal
// phases cannot be left, so a run that both wins and loses in one tick
// keeps whichever transition was applied first.
type Session struct {
	score int
	phase Phase
}

// NewSession starts a running session with a zero score.
func NewSession() *Session {
	return &Session{}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// AddScore increases the score by delta. Ignored when the run has ended or
// when delta is negative; the score is monotonically non-decreasing.
func (s *Session) AddScore(delta int) {
	if s.phase != PhaseRunning || delta < 0 {
		return
	}
	s.score += delta
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Running reports whether the run is still in progress.
func (s *Session) Running() bool {
	return s.phase == PhaseRunning
}

// Win moves the session to PhaseWon. No effect once the run has ended.
func (s *Session) Win() {
	if s.phase == PhaseRunning {
		s.phase = PhaseWon
	}
}

// Lose moves the session to PhaseLost. No effect once the run has ended.
func (s *Session) Lose() {
	if s.phase == PhaseRunning {
		s.phase = PhaseLost
	}
}

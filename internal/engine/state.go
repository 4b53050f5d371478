package engine

import (
	"maps"

	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/problems"
)

const (
	MaxHealth  = 100
	Damage     = 20
	LevelBonus = 100
)

// State is the battle phase. Exactly one holds at a time.
type State int

const (
	StateIdle State = iota
	StateAwaitingAnswer
	StateResolving
	StateDefeated
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingAnswer:
		return "AWAITING_ANSWER"
	case StateResolving:
		return "RESOLVING"
	case StateDefeated:
		return "DEFEATED"
	case StateGameOver:
		return "GAME_OVER"
	case StateVictory:
		return "VICTORY"
	}
	return "UNKNOWN"
}

// Terminal reports whether no further turns can happen without a reset.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}

// BattleState is the mutable session state owned by an Engine.
type BattleState struct {
	PlayerHealth      int
	PlayerLevel       int
	EnemyHealth       int
	EnemyLevel        int
	Score             int
	Problem           models.Problem
	State             State
	TimeRemaining     int
	ContinueRemaining int
	Seen              problems.Seen
}

func newBattleState() BattleState {
	return BattleState{
		PlayerHealth: MaxHealth,
		PlayerLevel:  1,
		EnemyHealth:  MaxHealth,
		EnemyLevel:   1,
		State:        StateIdle,
		Seen:         problems.Seen{},
	}
}

func (s BattleState) clone() BattleState {
	s.Seen = maps.Clone(s.Seen)
	return s
}

// TurnResult describes how a submitted answer, or an expired turn, was
// resolved.
type TurnResult struct {
	Ignored  bool // another resolution was in flight, or no turn was open
	Correct  bool
	TimedOut bool
	LevelUp  bool
	Problem  models.Problem // the problem that was answered
	State    State          // state once the resolution finished
}

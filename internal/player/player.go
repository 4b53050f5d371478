// Package player provides automated players that answer battle problems
// for the headless simulator.
package player

import (
	"context"
	"math/rand"

	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
)

// Player chooses an answer for the current turn.
type Player interface {
	Name() string
	Answer(ctx context.Context, st engine.BattleState, enemy models.Enemy) (string, error)
}

// Oracle knows every answer and gives the right one with probability
// Accuracy.
type Oracle struct {
	Accuracy float64
	rng      *rand.Rand
}

func NewOracle(accuracy float64, rng *rand.Rand) *Oracle {
	return &Oracle{Accuracy: accuracy, rng: rng}
}

func (o *Oracle) Name() string { return "oracle" }

func (o *Oracle) Answer(_ context.Context, st engine.BattleState, _ models.Enemy) (string, error) {
	if o.rng.Float64() < o.Accuracy {
		return st.Problem.Answer, nil
	}
	return "", nil
}

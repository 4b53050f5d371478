package engine

import (
	"context"
	"time"

	"github.com/tatianab/math-battles/internal/models"
)

// Character identifies one side of the battle.
type Character int

const (
	Player Character = iota
	Enemy
)

func (c Character) String() string {
	if c == Player {
		return "player"
	}
	return "enemy"
}

// Sound names a fire-and-forget audio cue.
type Sound string

const (
	SoundAttack     Sound = "attack"
	SoundDamage     Sound = "damage"
	SoundVictory    Sound = "victory"
	SoundDefeat     Sound = "defeat"
	SoundLevelUp    Sound = "level-up"
	SoundBossAppear Sound = "boss-appear"
	SoundPlayerHit  Sound = "player-hit"
	SoundEnemyHit   Sound = "enemy-hit"
)

// RenderEffects plays battle animations. Every Play method blocks until its
// animation has finished; the engine does not advance the battle until then.
type RenderEffects interface {
	PlayAttack(ctx context.Context, attacker, target Character)
	PlayDamage(ctx context.Context, target Character)
	PlayVictory(ctx context.Context, who Character)
	PlayLevelTransition(ctx context.Context, boss bool)
	PlayVictoryEffect(ctx context.Context)
	PlayDefeatEffect(ctx context.Context)
	SetEnemyAppearance(level int, enemy models.Enemy)
}

// AudioEffects triggers sounds. Play must not block.
type AudioEffects interface {
	Play(s Sound)
}

// UISink displays battle state. It holds no game logic.
type UISink interface {
	ShowProblem(question string)
	UpdateHealthAndLevel(playerHealth, playerLevel, enemyHealth, enemyLevel int)
	UpdateTimer(seconds int, fraction float64)
	ShowContinuePrompt(seconds int)
	ShowVictory(score int)
	ShowGameOver(score int)
}

// AnalyticsSink receives gameplay events. It never influences the battle.
type AnalyticsSink interface {
	LevelStart(level int, enemyName string)
	LevelComplete(level int, enemyName string, spent time.Duration)
	ProblemAttempt(level int, problemType string, correct bool, spent time.Duration)
	GameComplete(total time.Duration, levelsCompleted int)
	Error(kind, message string)
}

// Nop implements every collaborator interface and does nothing. Effects
// complete immediately.
type Nop struct{}

func (Nop) PlayAttack(context.Context, Character, Character) {}
func (Nop) PlayDamage(context.Context, Character) {}
func (Nop) PlayVictory(context.Context, Character) {}
func (Nop) PlayLevelTransition(context.Context, bool) {}
func (Nop) PlayVictoryEffect(context.Context) {}
func (Nop) PlayDefeatEffect(context.Context) {}
func (Nop) SetEnemyAppearance(int, models.Enemy) {}

func (Nop) Play(Sound) {}

func (Nop) ShowProblem(string) {}
func (Nop) UpdateHealthAndLevel(int, int, int, int) {}
func (Nop) UpdateTimer(int, float64) {}
func (Nop) ShowContinuePrompt(int) {}
func (Nop) ShowVictory(int) {}
func (Nop) ShowGameOver(int) {}

func (Nop) LevelStart(int, string) {}
func (Nop) LevelComplete(int, string, time.Duration) {}
func (Nop) ProblemAttempt(int, string, bool, time.Duration) {}
func (Nop) GameComplete(time.Duration, int) {}
func (Nop) Error(string, string) {}

package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
)

type effectKind int

const (
	fxAttack effectKind = iota
	fxDamage
	fxVictory
	fxLevelUp
	fxBoss
	fxVictoryEffect
	fxDefeatEffect
)

var effectDurations = map[effectKind]time.Duration{
	fxAttack:        500 * time.Millisecond,
	fxDamage:        300 * time.Millisecond,
	fxVictory:       time.Second,
	fxLevelUp:       1500 * time.Millisecond,
	fxBoss:          2500 * time.Millisecond,
	fxVictoryEffect: 800 * time.Millisecond,
	fxDefeatEffect:  1200 * time.Millisecond,
}

// effect is one animation. The model closes done once it has been shown
// for d.
type effect struct {
	kind effectKind
	who  engine.Character // attacker, damaged side or winner
	d    time.Duration
	done chan struct{}
}

type (
	problemMsg    struct{ question string }
	healthMsg     struct{ playerHealth, playerLevel, enemyHealth, enemyLevel int }
	continueMsg   struct{ seconds int }
	victoryMsg    struct{ score int }
	gameOverMsg   struct{ score int }
	effectMsg     struct{ effect }
	effectDoneMsg struct{ done chan struct{} }
)

type timerMsg struct {
	seconds  int
	fraction float64
}

type appearanceMsg struct {
	level int
	enemy models.Enemy
}

type sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards engine callbacks to a running bubbletea program. It
// implements engine.UISink and engine.RenderEffects. Effects block until the
// program has finished showing them, the context is cancelled, or the bridge
// is closed.
type Bridge struct {
	mu   sync.Mutex
	p    sender
	quit chan struct{}
	once sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{quit: make(chan struct{})}
}

// Attach sets the program that receives messages. Until then every call is
// dropped.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

// Close releases any effect still waiting on the program.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.quit) })
}

func (b *Bridge) program() sender {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.p
}

func (b *Bridge) send(msg tea.Msg) {
	if p := b.program(); p != nil {
		p.Send(msg)
	}
}

func (b *Bridge) play(ctx context.Context, kind effectKind, who engine.Character) {
	p := b.program()
	if p == nil {
		return
	}
	fx := effect{kind: kind, who: who, d: effectDurations[kind], done: make(chan struct{})}
	p.Send(effectMsg{fx})
	select {
	case <-fx.done:
	case <-ctx.Done():
	case <-b.quit:
	}
}

func (b *Bridge) PlayAttack(ctx context.Context, attacker, _ engine.Character) {
	b.play(ctx, fxAttack, attacker)
}

func (b *Bridge) PlayDamage(ctx context.Context, target engine.Character) {
	b.play(ctx, fxDamage, target)
}

func (b *Bridge) PlayVictory(ctx context.Context, who engine.Character) {
	b.play(ctx, fxVictory, who)
}

func (b *Bridge) PlayLevelTransition(ctx context.Context, boss bool) {
	if boss {
		b.play(ctx, fxBoss, engine.Enemy)
		return
	}
	b.play(ctx, fxLevelUp, engine.Player)
}

func (b *Bridge) PlayVictoryEffect(ctx context.Context) {
	b.play(ctx, fxVictoryEffect, engine.Player)
}

func (b *Bridge) PlayDefeatEffect(ctx context.Context) {
	b.play(ctx, fxDefeatEffect, engine.Player)
}

func (b *Bridge) SetEnemyAppearance(level int, enemy models.Enemy) {
	b.send(appearanceMsg{level, enemy})
}

func (b *Bridge) ShowProblem(question string) {
	b.send(problemMsg{question})
}

func (b *Bridge) UpdateHealthAndLevel(playerHealth, playerLevel, enemyHealth, enemyLevel int) {
	b.send(healthMsg{playerHealth, playerLevel, enemyHealth, enemyLevel})
}

func (b *Bridge) UpdateTimer(seconds int, fraction float64) {
	b.send(timerMsg{seconds, fraction})
}

func (b *Bridge) ShowContinuePrompt(seconds int) {
	b.send(continueMsg{seconds})
}

func (b *Bridge) ShowVictory(score int) {
	b.send(victoryMsg{score})
}

func (b *Bridge) ShowGameOver(score int) {
	b.send(gameOverMsg{score})
}

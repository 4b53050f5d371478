package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/problems"
	"github.com/tatianab/math-battles/internal/timer"
)

var (
	ErrAlreadyStarted = errors.New("battle already started")
	ErrNotDefeated    = errors.New("no continue decision is pending")
)

// Options configures an Engine. Nil collaborators default to Nop.
type Options struct {
	Roster    *models.Roster
	Rand      *rand.Rand
	Scheduler timer.Scheduler
	Now       func() time.Time

	Render    RenderEffects
	Audio     AudioEffects
	UI        UISink
	Analytics AnalyticsSink
}

// Engine runs one battle session. All methods are safe for concurrent use;
// collaborators are always called with the engine unlocked.
type Engine struct {
	mu     sync.Mutex
	st     BattleState
	phase  uint64          // bumped on every new turn, defeat and reset
	ctx    context.Context // from the last Start or Continue; used by effects of a timed-out turn
	gen    *problems.Generator
	timers *timer.Manager
	roster *models.Roster
	now    func() time.Time

	render    RenderEffects
	audio     AudioEffects
	ui        UISink
	analytics AnalyticsSink

	gameStarted  time.Time
	levelStarted time.Time
	turnStarted  time.Time
}

// NewEngine creates an idle engine.
func NewEngine(opts Options) *Engine {
	if opts.Roster == nil {
		opts.Roster = models.DefaultRoster()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Clock{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Render == nil {
		opts.Render = Nop{}
	}
	if opts.Audio == nil {
		opts.Audio = Nop{}
	}
	if opts.UI == nil {
		opts.UI = Nop{}
	}
	if opts.Analytics == nil {
		opts.Analytics = Nop{}
	}

	e := &Engine{
		st:        newBattleState(),
		ctx:       context.Background(),
		gen:       problems.NewGenerator(opts.Rand),
		roster:    opts.Roster,
		now:       opts.Now,
		render:    opts.Render,
		audio:     opts.Audio,
		ui:        opts.UI,
		analytics: opts.Analytics,
	}
	e.timers = timer.NewManager(opts.Scheduler, e.onTurnStep, e.onContinueStep)
	return e
}

// Roster returns the enemy roster the engine fights through.
func (e *Engine) Roster() *models.Roster {
	return e.roster
}

// Snapshot returns a copy of the current battle state.
func (e *Engine) Snapshot() BattleState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.clone()
}

// Start opens the first turn. ctx is also used for effects triggered by
// timer expiry.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.st.State != StateIdle {
		e.mu.Unlock()
		return ErrAlreadyStarted
	}
	e.ctx = ctx
	now := e.now()
	e.gameStarted = now
	e.levelStarted = now
	e.st.Problem = e.gen.Generate(e.st.EnemyLevel, e.st.Seen)
	secs := e.startTurnLocked()
	st := e.st.clone()
	e.mu.Unlock()

	enemy := e.roster.Enemy(st.EnemyLevel)
	e.render.SetEnemyAppearance(st.EnemyLevel, enemy)
	e.analytics.LevelStart(st.EnemyLevel, enemy.Name)
	e.ui.UpdateHealthAndLevel(st.PlayerHealth, st.PlayerLevel, st.EnemyHealth, st.EnemyLevel)
	e.ui.ShowProblem(st.Problem.Question)
	e.ui.UpdateTimer(secs, 1)
	return nil
}

// Reset stops all timers and returns the session to its initial idle state.
// A resolution still in flight is abandoned.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.timers.StopAll()
	e.st = newBattleState()
	e.phase++
	e.mu.Unlock()
}

// NewGame resets the session and starts a fresh battle.
func (e *Engine) NewGame(ctx context.Context) error {
	e.Reset()
	return e.Start(ctx)
}

// Submit resolves the open turn with answer. Answers arriving while another
// resolution is in flight, or when no turn is open, are ignored.
func (e *Engine) Submit(ctx context.Context, answer string) TurnResult {
	return e.resolve(ctx, answer, false, 0)
}

// Continue revives the player after a defeat and opens a new turn at the
// same enemy level.
func (e *Engine) Continue(ctx context.Context) error {
	e.mu.Lock()
	if e.st.State != StateDefeated {
		e.mu.Unlock()
		return ErrNotDefeated
	}
	e.ctx = ctx
	e.timers.Continue.Stop()
	e.st.ContinueRemaining = 0
	e.st.PlayerHealth = MaxHealth
	e.st.Problem = e.gen.Generate(e.st.EnemyLevel, e.st.Seen)
	secs := e.startTurnLocked()
	st := e.st.clone()
	e.mu.Unlock()

	e.ui.UpdateHealthAndLevel(st.PlayerHealth, st.PlayerLevel, st.EnemyHealth, st.EnemyLevel)
	e.ui.ShowProblem(st.Problem.Question)
	e.ui.UpdateTimer(secs, 1)
	return nil
}

// Decline ends the game after a defeat.
func (e *Engine) Decline(ctx context.Context) error {
	e.mu.Lock()
	if e.st.State != StateDefeated {
		e.mu.Unlock()
		return ErrNotDefeated
	}
	e.finishLocked(StateGameOver)
	st := e.st.clone()
	e.mu.Unlock()

	e.reportGameOver(st)
	return nil
}

// startTurnLocked opens a turn for the current problem and returns its
// time budget.
func (e *Engine) startTurnLocked() int {
	secs := e.timers.StartTurn(e.st.EnemyLevel)
	e.st.TimeRemaining = secs
	e.st.State = StateAwaitingAnswer
	e.phase++
	e.turnStarted = e.now()
	return secs
}

// finishLocked enters a terminal state.
func (e *Engine) finishLocked(s State) {
	e.timers.StopAll()
	e.st.State = s
	e.st.TimeRemaining = 0
	e.st.ContinueRemaining = 0
	e.phase++
}

func (e *Engine) reportGameOver(st BattleState) {
	e.analytics.GameComplete(e.now().Sub(e.gameStarted), st.EnemyLevel-1)
	e.ui.ShowGameOver(st.Score)
}

func (e *Engine) onTurnStep(gen uint64) {
	e.mu.Lock()
	if e.st.State != StateAwaitingAnswer {
		e.mu.Unlock()
		return
	}
	rem, expired, ok := e.timers.Turn.Fire(gen)
	if !ok {
		e.mu.Unlock()
		return
	}
	e.st.TimeRemaining = rem
	frac := e.timers.Turn.Fraction()
	phase := e.phase
	ctx := e.ctx
	e.mu.Unlock()

	e.ui.UpdateTimer(rem, frac)
	if expired {
		e.resolve(ctx, "", true, phase)
	}
}

func (e *Engine) onContinueStep(gen uint64) {
	e.mu.Lock()
	if e.st.State != StateDefeated {
		e.mu.Unlock()
		return
	}
	rem, expired, ok := e.timers.Continue.Fire(gen)
	if !ok {
		e.mu.Unlock()
		return
	}
	e.st.ContinueRemaining = rem
	if !expired {
		e.mu.Unlock()
		e.ui.ShowContinuePrompt(rem)
		return
	}
	e.finishLocked(StateGameOver)
	st := e.st.clone()
	e.mu.Unlock()

	e.ui.ShowContinuePrompt(0)
	e.reportGameOver(st)
}

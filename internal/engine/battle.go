package engine

import (
	"context"
	"time"

	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/timer"
)

// resolution carries one turn through its effects. phase detects a Reset
// that happened while effects were playing.
type resolution struct {
	ctx   context.Context
	phase uint64
	res   TurnResult
}

// resolve closes the open turn. A timed-out turn only resolves if it is
// still the turn that was open when its countdown expired.
func (e *Engine) resolve(ctx context.Context, answer string, timedOut bool, turnPhase uint64) TurnResult {
	e.mu.Lock()
	if e.st.State != StateAwaitingAnswer || (timedOut && turnPhase != e.phase) {
		res := TurnResult{Ignored: true, State: e.st.State}
		e.mu.Unlock()
		return res
	}
	e.timers.Turn.Stop()
	e.st.State = StateResolving
	e.phase++
	r := &resolution{ctx: ctx, phase: e.phase}
	r.res.Problem = e.st.Problem
	r.res.TimedOut = timedOut
	r.res.Correct = !timedOut && e.st.Problem.Check(answer)
	level := e.st.EnemyLevel
	spent := e.now().Sub(e.turnStarted)
	e.mu.Unlock()

	e.analytics.ProblemAttempt(level, string(r.res.Problem.Category), r.res.Correct, spent)
	if r.res.Correct {
		e.playerStrikes(r)
	} else {
		e.enemyStrikes(r)
	}

	e.mu.Lock()
	r.res.State = e.st.State
	e.mu.Unlock()
	return r.res
}

// update applies fn under the lock unless the session was reset since r
// began.
func (e *Engine) update(r *resolution, fn func(s *BattleState)) (BattleState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != r.phase {
		return BattleState{}, false
	}
	fn(&e.st)
	return e.st.clone(), true
}

func (e *Engine) showHealth(st BattleState) {
	e.ui.UpdateHealthAndLevel(st.PlayerHealth, st.PlayerLevel, st.EnemyHealth, st.EnemyLevel)
}

func (e *Engine) playerStrikes(r *resolution) {
	e.render.PlayAttack(r.ctx, Player, Enemy)
	e.audio.Play(SoundAttack)
	e.render.PlayDamage(r.ctx, Enemy)
	e.audio.Play(SoundEnemyHit)

	st, ok := e.update(r, func(s *BattleState) { s.EnemyHealth -= Damage })
	if !ok {
		return
	}
	e.showHealth(st)
	if st.EnemyHealth > 0 {
		e.nextTurn(r)
		return
	}

	e.render.PlayVictory(r.ctx, Player)
	e.render.PlayVictoryEffect(r.ctx)
	e.audio.Play(SoundVictory)
	if st.EnemyLevel >= models.MaxLevel {
		e.win(r)
		return
	}
	e.advanceLevel(r)
}

func (e *Engine) enemyStrikes(r *resolution) {
	e.render.PlayAttack(r.ctx, Enemy, Player)
	e.audio.Play(SoundDamage)
	e.render.PlayDamage(r.ctx, Player)
	e.audio.Play(SoundPlayerHit)

	st, ok := e.update(r, func(s *BattleState) { s.PlayerHealth -= Damage })
	if !ok {
		return
	}
	e.showHealth(st)
	if st.PlayerHealth > 0 {
		e.nextTurn(r)
		return
	}

	e.render.PlayDefeatEffect(r.ctx)
	e.audio.Play(SoundDefeat)
	st, ok = e.update(r, func(s *BattleState) {
		s.State = StateDefeated
		s.ContinueRemaining = timer.ContinueSeconds
		e.timers.StartContinue()
		e.phase++
	})
	if !ok {
		return
	}
	e.ui.ShowContinuePrompt(st.ContinueRemaining)
}

func (e *Engine) advanceLevel(r *resolution) {
	var spent time.Duration
	st, ok := e.update(r, func(s *BattleState) {
		now := e.now()
		spent = now.Sub(e.levelStarted)
		e.levelStarted = now
		s.PlayerLevel++
		s.EnemyLevel++
		s.EnemyHealth = MaxHealth
		s.Score += LevelBonus
		s.Seen.Clear()
	})
	if !ok {
		return
	}
	r.res.LevelUp = true

	prev := st.EnemyLevel - 1
	e.analytics.LevelComplete(prev, e.roster.Enemy(prev).Name, spent)
	e.showHealth(st)

	boss := models.IsBossLevel(st.EnemyLevel)
	if boss {
		e.audio.Play(SoundBossAppear)
	} else {
		e.audio.Play(SoundLevelUp)
	}
	e.render.PlayLevelTransition(r.ctx, boss)

	enemy := e.roster.Enemy(st.EnemyLevel)
	e.render.SetEnemyAppearance(st.EnemyLevel, enemy)
	e.analytics.LevelStart(st.EnemyLevel, enemy.Name)
	e.nextTurn(r)
}

func (e *Engine) win(r *resolution) {
	var spent, total time.Duration
	st, ok := e.update(r, func(*BattleState) {
		now := e.now()
		spent = now.Sub(e.levelStarted)
		total = now.Sub(e.gameStarted)
		e.finishLocked(StateVictory)
	})
	if !ok {
		return
	}
	e.analytics.LevelComplete(st.EnemyLevel, e.roster.Enemy(st.EnemyLevel).Name, spent)
	e.analytics.GameComplete(total, models.MaxLevel)
	e.ui.ShowVictory(st.Score)
}

func (e *Engine) nextTurn(r *resolution) {
	var secs int
	st, ok := e.update(r, func(s *BattleState) {
		s.Problem = e.gen.Generate(s.EnemyLevel, s.Seen)
		secs = e.startTurnLocked()
	})
	if !ok {
		return
	}
	e.ui.ShowProblem(st.Problem.Question)
	e.ui.UpdateTimer(secs, 1)
}

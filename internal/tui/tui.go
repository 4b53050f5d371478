// Package tui is the terminal front end. The engine drives it through a
// Bridge; the model only displays what it is told and forwards input.
package tui

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/math-battles/internal/analytics"
	"github.com/tatianab/math-battles/internal/audio"
	"github.com/tatianab/math-battles/internal/config"
	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/timer"
)

type sessionState int

const (
	stateTitle sessionState = iota
	stateStarting
	stateBattle
	stateContinue
	stateVictory
	stateGameOver
)

const barWidth = 30

// muter toggles sound output.
type muter interface {
	SetMuted(bool)
	Muted() bool
}

type model struct {
	ctx    context.Context // passed to engine calls made from commands
	state  sessionState
	engine *engine.Engine
	sound  muter

	textInput textinput.Model
	help      help.Model
	keys      keyMap
	playerBar progress.Model
	enemyBar  progress.Model
	timerBar  progress.Model

	title        string
	enemy        models.Enemy
	question     string
	playerHealth int
	playerLevel  int
	enemyHealth  int
	enemyLevel   int
	seconds      int
	fraction     float64
	continueSecs int
	score        int
	status       string
	fx           *effect
	err          error
	width        int
}

func newBar(color string) progress.Model {
	return progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
}

func NewModel(ctx context.Context, eng *engine.Engine, sound muter) model {
	ti := textinput.New()
	ti.Placeholder = "Your answer..."
	ti.CharLimit = 32
	ti.Width = 20

	roster := eng.Roster()
	st := eng.Snapshot()
	return model{
		ctx:          ctx,
		state:        stateTitle,
		engine:       eng,
		sound:        sound,
		textInput:    ti,
		help:         help.New(),
		keys:         newKeyMap(),
		playerBar:    newBar(playerColor),
		enemyBar:     newBar(roster.Enemy(1).Color),
		timerBar:     newBar(timerColor),
		title:        roster.Title,
		enemy:        roster.Enemy(1),
		playerHealth: st.PlayerHealth,
		playerLevel:  st.PlayerLevel,
		enemyHealth:  st.EnemyHealth,
		enemyLevel:   st.EnemyLevel,
		fraction:     1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type errMsg struct {
	err error
}

type turnResultMsg struct {
	res engine.TurnResult
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mute):
			if m.sound != nil {
				m.sound.SetMuted(!m.sound.Muted())
			}
			return m, nil
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case problemMsg:
		m.question = msg.question
		m.state = stateBattle
		m.textInput.Reset()
		m.textInput.Focus()
		return m, nil

	case healthMsg:
		m.playerHealth, m.playerLevel = msg.playerHealth, msg.playerLevel
		m.enemyHealth, m.enemyLevel = msg.enemyHealth, msg.enemyLevel
		return m, nil

	case timerMsg:
		m.seconds, m.fraction = msg.seconds, msg.fraction
		if msg.seconds == 0 && m.state == stateBattle {
			m.status = "Time's up!"
		}
		return m, nil

	case appearanceMsg:
		m.enemy = msg.enemy
		m.enemyLevel = msg.level
		m.enemyBar = newBar(msg.enemy.Color)
		return m, nil

	case continueMsg:
		m.continueSecs = msg.seconds
		if msg.seconds > 0 {
			m.state = stateContinue
			m.textInput.Blur()
		}
		return m, nil

	case victoryMsg:
		m.score = msg.score
		m.state = stateVictory
		m.textInput.Blur()
		return m, nil

	case gameOverMsg:
		m.score = msg.score
		m.state = stateGameOver
		m.textInput.Blur()
		return m, nil

	case effectMsg:
		fx := msg.effect
		m.fx = &fx
		return m, tea.Tick(fx.d, func(time.Time) tea.Msg {
			return effectDoneMsg{fx.done}
		})

	case effectDoneMsg:
		if m.fx != nil && m.fx.done == msg.done {
			m.fx = nil
		}
		close(msg.done)
		return m, nil

	case turnResultMsg:
		m.score = m.engine.Snapshot().Score
		switch {
		case msg.res.Ignored:
		case msg.res.Correct:
			m.status = "Correct!"
		case msg.res.TimedOut:
			m.status = "Time's up!"
		default:
			m.status = fmt.Sprintf("Wrong! The answer was %s.", msg.res.Problem.Answer)
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	if m.state == stateBattle {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.state {
	case stateTitle:
		if key.Matches(msg, m.keys.Submit) {
			m.state = stateStarting
			return m, m.start(), true
		}

	case stateBattle:
		if key.Matches(msg, m.keys.Submit) {
			answer := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			m.status = ""
			return m, m.submit(answer), true
		}

	case stateContinue:
		switch {
		case key.Matches(msg, m.keys.Continue):
			m.status = ""
			return m, m.resume(), true
		case key.Matches(msg, m.keys.Decline):
			return m, m.decline(), true
		}
		return m, nil, true

	case stateVictory, stateGameOver:
		if key.Matches(msg, m.keys.Restart) {
			m.status = ""
			m.err = nil
			m.state = stateStarting
			return m, m.newGame(), true
		}
		return m, nil, true
	}
	return m, nil, false
}

func errCmd(err error) tea.Msg {
	if err != nil {
		return errMsg{err}
	}
	return nil
}

func (m model) start() tea.Cmd {
	return func() tea.Msg {
		return errCmd(m.engine.Start(m.ctx))
	}
}

func (m model) newGame() tea.Cmd {
	return func() tea.Msg {
		return errCmd(m.engine.NewGame(m.ctx))
	}
}

func (m model) submit(answer string) tea.Cmd {
	return func() tea.Msg {
		return turnResultMsg{m.engine.Submit(m.ctx, answer)}
	}
}

func (m model) resume() tea.Cmd {
	return func() tea.Msg {
		return errCmd(m.engine.Continue(m.ctx))
	}
}

func (m model) decline() tea.Cmd {
	return func() tea.Msg {
		return errCmd(m.engine.Decline(m.ctx))
	}
}

// Options configures an interactive game.
type Options struct {
	Roster    *models.Roster
	Rand      *rand.Rand
	Audio     *audio.Player
	Analytics engine.AnalyticsSink
}

// Run plays one interactive session until the player quits.
func Run(ctx context.Context, opts Options) error {
	b := NewBridge()
	defer b.Close()

	eopts := engine.Options{
		Roster:    opts.Roster,
		Rand:      opts.Rand,
		Scheduler: timer.Clock{},
		Render:    b,
		UI:        b,
		Analytics: opts.Analytics,
	}
	var sound muter
	if opts.Audio != nil {
		eopts.Audio = opts.Audio
		sound = opts.Audio
	}
	eng := engine.NewEngine(eopts)
	defer eng.Reset()

	p := tea.NewProgram(NewModel(ctx, eng, sound), tea.WithAltScreen(), tea.WithContext(ctx))
	b.Attach(p)
	_, err := p.Run()
	return err
}

// Start runs the game configured from the environment.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	return StartWith(cfg)
}

// StartWith runs the game with cfg. Logs go to cfg.LogFile so they do not
// garble the screen.
func StartWith(cfg *config.Config) error {
	f, err := tea.LogToFile(cfg.LogFile, "math-battles")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	roster := models.DefaultRoster()
	if cfg.RosterPath != "" {
		roster, err = models.LoadRoster(cfg.RosterPath)
		if err != nil {
			return err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting %q with seed %d", roster.Title, seed)

	stats := analytics.NewLogger(log.Default())
	sfx := audio.NewPlayer(audio.DefaultVolume, cfg.Mute)
	if err := sfx.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
		stats.Error("audio", err.Error())
	}
	defer sfx.Close()

	return Run(context.Background(), Options{
		Roster:    roster,
		Rand:      rand.New(rand.NewSource(seed)),
		Audio:     sfx,
		Analytics: stats,
	})
}

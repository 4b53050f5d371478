package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/timer"
)

const (
	playerColor  = "#4A90D9"
	timerColor   = "#FFD700"
	warningColor = "#FF3B30"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Width(24)

	healthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(timerColor))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor)).
			Bold(true)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			MarginTop(1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(1, 2)
)

func (m model) View() string {
	var s string

	switch m.state {
	case stateTitle, stateStarting:
		s = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.title),
			"",
			fmt.Sprintf("Defeat %d foes by solving their riddles before time runs out.", models.MaxLevel),
			"Every correct answer strikes your enemy; every mistake strikes you.",
		)

	case stateBattle, stateContinue:
		s = m.renderBattle()

	case stateVictory:
		s = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("VICTORY"),
			"",
			"The realm is saved!",
			fmt.Sprintf("Final score: %d", m.score),
		)

	case stateGameOver:
		s = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("GAME OVER"),
			"",
			fmt.Sprintf("You fell to the %s on level %d.", m.enemy.Name, m.enemyLevel),
			fmt.Sprintf("Final score: %d", m.score),
		)
	}

	if m.err != nil {
		s += "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	s += "\n\n" + m.help.View(m.keys.forState(m.state))
	return "\n" + panelStyle.Render(s) + "\n"
}

func (m model) renderBattle() string {
	enemyName := lipgloss.NewStyle().Foreground(lipgloss.Color(m.enemy.Color)).Bold(true).Render(m.enemy.Name)
	if models.IsBossLevel(m.enemyLevel) {
		enemyName += bannerStyle.Render(" (boss)")
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			titleStyle.Render(m.title),
			fmt.Sprintf("   Score: %d", m.score),
		),
		"",
		m.healthRow(labelStyle.Render(fmt.Sprintf("You (level %d)", m.playerLevel)),
			m.playerBar, m.playerHealth, m.flashing(engine.Player)),
		m.healthRow(labelStyle.Render(fmt.Sprintf("%s (level %d)", enemyName, m.enemyLevel)),
			m.enemyBar, m.enemyHealth, m.flashing(engine.Enemy)),
		"",
	}

	if m.state == stateContinue {
		rows = append(rows,
			flashStyle.Render("You have been defeated!"),
			fmt.Sprintf("Continue? (%d)", m.continueSecs),
		)
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	rows = append(rows, m.timerRow())
	if m.fx != nil {
		rows = append(rows, bannerStyle.Render(m.banner(*m.fx)))
	} else {
		rows = append(rows, statusStyle.Render(m.status))
	}
	rows = append(rows,
		questionStyle.Render(m.question),
		m.textInput.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) healthRow(label string, bar progress.Model, health int, flash bool) string {
	style := healthStyle
	if flash {
		style = flashStyle
	}
	percent := float64(max(health, 0)) / float64(engine.MaxHealth)
	return label + bar.ViewAs(percent) + style.Render(fmt.Sprintf(" %3d/%d", health, engine.MaxHealth))
}

func (m model) timerRow() string {
	label := labelStyle.Render("Time")
	secs := healthStyle.Render(fmt.Sprintf(" %2ds", m.seconds))
	if timer.InWarning(m.seconds) {
		secs = flashStyle.Render(fmt.Sprintf(" %2ds", m.seconds))
		return label + newBar(warningColor).ViewAs(m.fraction) + secs
	}
	return label + m.timerBar.ViewAs(m.fraction) + secs
}

// flashing reports whether who is taking damage right now.
func (m model) flashing(who engine.Character) bool {
	return m.fx != nil && m.fx.kind == fxDamage && m.fx.who == who
}

func (m model) banner(fx effect) string {
	foe := m.enemy.Name
	switch fx.kind {
	case fxAttack:
		if fx.who == engine.Player {
			return fmt.Sprintf("You strike the %s!", foe)
		}
		return fmt.Sprintf("The %s strikes you!", foe)
	case fxDamage:
		if fx.who == engine.Enemy {
			return fmt.Sprintf("The %s reels. -%d", foe, engine.Damage)
		}
		return fmt.Sprintf("You are wounded. -%d", engine.Damage)
	case fxVictory:
		return fmt.Sprintf("The %s is defeated!", foe)
	case fxLevelUp:
		return "Level up! A new foe approaches..."
	case fxBoss:
		return "BEWARE! THE FINAL FOE APPROACHES..."
	case fxVictoryEffect:
		return "Victory!"
	case fxDefeatEffect:
		return "You have fallen..."
	}
	return ""
}

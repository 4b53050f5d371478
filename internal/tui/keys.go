package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Continue key.Binding
	Decline  key.Binding
	Restart  key.Binding
	Mute     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Continue: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "continue"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "give up"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Mute: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sound"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// forState enables only the bindings that do something in s.
func (k keyMap) forState(s sessionState) keyMap {
	k.Submit.SetEnabled(s == stateTitle || s == stateBattle)
	if s == stateTitle {
		k.Submit.SetHelp("enter", "begin")
	} else {
		k.Submit.SetHelp("enter", "answer")
	}
	k.Continue.SetEnabled(s == stateContinue)
	k.Decline.SetEnabled(s == stateContinue)
	k.Restart.SetEnabled(s == stateVictory || s == stateGameOver)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Continue, k.Decline, k.Restart, k.Mute, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

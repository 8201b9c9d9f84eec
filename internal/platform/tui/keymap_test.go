package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyMirrorsPhysicalButtons(t *testing.T) {
	km := NewKeyMapper()

	cases := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{runeKey('s'), ActionStart},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ActionStart},
		{runeKey('b'), ActionBuzzer},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionBuzzer},
		{runeKey('r'), ActionReset},
		{runeKey('q'), ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{runeKey('x'), ActionNone},
	}

	for _, tc := range cases {
		if got := km.MapKey(tc.msg); got != tc.want {
			t.Errorf("MapKey(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

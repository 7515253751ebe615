package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate bounds the frame rate a terminal can usefully redraw at.
const maxTickRate = 240

// TickMsg carries the wall-clock time of one simulation frame.
type TickMsg time.Time

func tickInterval(rate int) time.Duration {
	rate = min(max(rate, 1), maxTickRate)
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next frame.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

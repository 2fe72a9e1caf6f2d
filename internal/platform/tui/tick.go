// Package tui runs Bear Run in a terminal through Bubble Tea, locally or
// over SSH. It owns the frame schedule, key bindings and styling; the game
// rules live in the game package.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to run one frame. Gen identifies the frame chain
// that scheduled it, so a chain left over from an earlier run is dropped.
type FrameMsg struct {
	Gen  int
	Time time.Time
}

// frameInterval returns the time between frames at fps frames per second.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// frameCmd schedules the next frame of chain gen.
func frameCmd(fps, gen int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Time: t}
	})
}

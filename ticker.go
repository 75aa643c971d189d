package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const frameInterval = time.Second / 60

type frameMsg struct {
	gen int
	at  time.Time
}

// frameClock drives the game at a fixed frame rate and reports the wall time
// between frames. Every Start opens a new generation, so frames from an older
// chain are dropped and at most one chain stays alive.
type frameClock struct {
	gen     int
	running bool
	last    time.Time
}

func (c *frameClock) Start(now time.Time) tea.Cmd {
	c.gen++
	c.running = true
	c.last = now
	return frameCmd(c.gen)
}

// Stop ends the live chain. Calling it again is a no-op.
func (c *frameClock) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.gen++
}

func (c *frameClock) Running() bool {
	return c.running
}

// Frame consumes msg and returns the elapsed time since the previous frame
// together with the command for the next one. ok is false for stale frames.
func (c *frameClock) Frame(msg frameMsg) (elapsed time.Duration, next tea.Cmd, ok bool) {
	if !c.running || msg.gen != c.gen {
		return 0, nil, false
	}
	elapsed = msg.at.Sub(c.last)
	if elapsed < 0 {
		elapsed = 0
	}
	c.last = msg.at
	return elapsed, frameCmd(c.gen), true
}

func frameCmd(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

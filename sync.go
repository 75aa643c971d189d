package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaiqueGovani/legotris/pkg/scores"
)

const syncTimeout = 5 * time.Second

type scoresFetchedMsg struct {
	list []scores.Entry
	err  error
}

type scoreUploadedMsg struct {
	err error
}

type syncTickMsg struct{}

func fetchScoresCmd(remote *scores.Remote) tea.Cmd {
	return func() tea.Msg {
		if !remote.Enabled() {
			return scoresFetchedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		list, err := remote.Fetch(ctx)
		return scoresFetchedMsg{list: list, err: err}
	}
}

func uploadScoreCmd(remote *scores.Remote, entry scores.Entry) tea.Cmd {
	return func() tea.Msg {
		if !remote.Enabled() {
			return scoreUploadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		return scoreUploadedMsg{err: remote.Upload(ctx, entry)}
	}
}

func syncTickCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg { return syncTickMsg{} })
}

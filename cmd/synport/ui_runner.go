package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"synport/internal/progress"
	"synport/internal/ui"
)

// runWithUI runs work on a goroutine while a Bubble Tea program renders its
// progress events. work must send events only to the sink it is given.
func runWithUI[T any](ctx context.Context, title string, total int, work func(context.Context, progress.Sink) (T, error)) (T, error) {
	type outcome struct {
		result T
		err    error
	}
	events := make(chan progress.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		res, err := work(ctx, progress.ChannelSink{Ch: events})
		outcomeCh <- outcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, total, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep draining so the worker never blocks on a full channel.
		go func() {
			for range events {
			}
		}()
	}
	out := <-outcomeCh
	if uiErr != nil && out.err == nil && ctx.Err() == nil {
		return out.result, uiErr
	}
	return out.result, out.err
}

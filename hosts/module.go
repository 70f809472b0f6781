package hosts

import (
	"github.com/gdamore/tcell/v2"
	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/stageconfigs"
)

type Module struct {
	dscope.Module
	Configs stageconfigs.Module
}

func (Module) Input() *Input {
	return NewInput()
}

type NewLoop func(project *projects.Project, sinks ...Sink) *Loop

func (Module) NewLoop(
	input *Input,
	rate stageconfigs.FrameRate,
	logger logs.Logger,
) NewLoop {
	return func(project *projects.Project, sinks ...Sink) *Loop {
		return &Loop{
			Project:   project,
			Input:     input,
			Sinks:     sinks,
			FrameRate: rate,
			Logger:    logger,
		}
	}
}

func (Module) Feed(
	input *Input,
	logger logs.Logger,
) *Feed {
	return NewFeed(input, logger)
}

type NewTerminal func(screen tcell.Screen) *Terminal

func (Module) NewTerminal(
	input *Input,
	size stageconfigs.StageSize,
) NewTerminal {
	return func(screen tcell.Screen) *Terminal {
		return &Terminal{
			Screen: screen,
			Stage:  size,
			Input:  input,
		}
	}
}

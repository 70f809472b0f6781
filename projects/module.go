package projects

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/stageconfigs"
)

type Module struct {
	dscope.Module
	Configs stageconfigs.Module
}

func (Module) Config(
	clonesOnStop stageconfigs.ClonesOnStop,
	batchBudget stageconfigs.BatchBudget,
	maxClones stageconfigs.MaxClones,
) Config {
	return Config{
		ClonesOnStop: clonesOnStop,
		BatchBudget:  int(batchBudget),
		MaxClones:    int(maxClones),
	}
}

func (Module) Reporter(
	logger logs.Logger,
) Reporter {
	return LogReporter{
		Logger: logger,
	}
}

type BuildFunc func(program Program) (*Project, error)

func (Module) Build(
	config Config,
	reporter Reporter,
	logger logs.Logger,
	newSpan logs.NewSpan,
) BuildFunc {
	return func(program Program) (*Project, error) {
		ctx, _ := newSpan(context.Background(), "")
		project, err := Build(program, Options{
			Config:   config,
			Reporter: reporter,
			Logger:   logger,
		})
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		project.WithContext(ctx)
		return project, nil
	}
}

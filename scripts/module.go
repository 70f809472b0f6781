package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/assets"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
)

type Module struct {
	dscope.Module
	Assets assets.Module
}

type CompileFunc func(name string, src []byte) (projects.Program, error)

func (Module) Compile(
	catalog assets.Catalog,
	logger logs.Logger,
) CompileFunc {
	return func(name string, src []byte) (projects.Program, error) {
		return Compile(name, src, Options{
			Catalog: catalog,
			Logger:  logger,
		})
	}
}

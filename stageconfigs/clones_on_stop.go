package stageconfigs

import (
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/configs"
	"github.com/reusee/stagecoach/vars"
)

// ClonesOnStop decides what happens to live clones when the project stops.
type ClonesOnStop string

const (
	ClearClones ClonesOnStop = "clear"
	KeepClones  ClonesOnStop = "keep"
)

var clonesOnStopFlag = cmds.Enum("-clones-on-stop", string(ClearClones), string(KeepClones))

func (Module) ClonesOnStop(
	loader configs.Loader,
) ClonesOnStop {
	switch policy := ClonesOnStop(vars.FirstNonZero(
		*clonesOnStopFlag,
		configs.First[string](loader, "clones_on_stop"),
	)); policy {
	case KeepClones:
		return KeepClones
	}
	return ClearClones
}

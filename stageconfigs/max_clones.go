package stageconfigs

import (
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/configs"
	"github.com/reusee/stagecoach/vars"
)

// MaxClones caps the number of live clones. Zero means no cap.
type MaxClones int

var maxClonesFlag = cmds.Var[int]("-max-clones")

func (Module) MaxClones(
	loader configs.Loader,
) MaxClones {
	return MaxClones(max(0, vars.FirstNonZero(
		*maxClonesFlag,
		configs.First[int](loader, "max_clones"),
	)))
}

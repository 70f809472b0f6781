package stageconfigs

import (
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/configs"
	"github.com/reusee/stagecoach/vars"
)

// FrameRate is the number of frames a host ticks per second.
type FrameRate int

const DefaultFrameRate = 60

var frameRateFlag = cmds.Var[int]("-fps")

func (Module) FrameRate(
	loader configs.Loader,
) FrameRate {
	return FrameRate(vars.FirstNonZero(
		*frameRateFlag,
		configs.First[int](loader, "frame_rate"),
		DefaultFrameRate,
	))
}

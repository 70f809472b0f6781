package stageconfigs

import (
	"github.com/reusee/stagecoach/configs"
)

// StageSize is the visible stage area in stage units, centred on the origin.
type StageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (Module) StageSize(
	loader configs.Loader,
) StageSize {
	size := configs.First[StageSize](loader, "stage")
	if size.Width <= 0 {
		size.Width = 480
	}
	if size.Height <= 0 {
		size.Height = 360
	}
	return size
}

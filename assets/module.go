package assets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

var assetsFlag = cmds.Var[string]("-assets")

// ManifestPath is the asset manifest to load. Empty means no costumes are
// known by name.
type ManifestPath string

func (Module) ManifestPath() ManifestPath {
	return ManifestPath(*assetsFlag)
}

func (Module) Catalog(
	path ManifestPath,
	logger logs.Logger,
) Catalog {
	if path == "" {
		return Catalog{}
	}
	catalog, err := Load(string(path))
	if err != nil {
		panic(err)
	}
	logger.Info("assets", "path", string(path), "costumes", len(catalog))
	return catalog
}

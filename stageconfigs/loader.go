package stageconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/configs"
	"github.com/reusee/stagecoach/logs"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config")

// ConfigPaths lists config documents in precedence order: explicit -config
// files, then stage.cue in the working directory, the user config dir and /etc.
type ConfigPaths []string

func (Module) ConfigPaths() (paths ConfigPaths) {
	paths = append(paths, *configFlag...)

	filenames := []string{
		"stage.cue",
		".stage.cue",
	}
	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "stagecoach"))
	}
	dirs = append(dirs, "/etc/stagecoach")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", []string(paths),
		)
	}
	return configs.NewLoader(paths, schema)
}

package mdllconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/mdll/cmds"
	"github.com/reusee/mdll/configs"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/modes"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Collect[string]("-config", "load config file")

var filenames = []string{
	"mdll.cue",
	".mdll.cue",
}

// ConfigPaths lists config files, most specific first.
type ConfigPaths []string

func (Module) ConfigPaths(
	mode modes.Mode,
) (paths ConfigPaths) {

	exists := func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// explicit
	paths = append(paths, *configFlag...)

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			if exists(path) {
				paths = append(paths, path)
			}
		}
	}

	if mode != modes.ModeProduction {
		return
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, "mdll", filename)
			if exists(path) {
				paths = append(paths, path)
			}
		}
	}

	// system wide dir
	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if exists(path) {
			paths = append(paths, path)
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
	return configs.NewLoader(paths, Schema)
}

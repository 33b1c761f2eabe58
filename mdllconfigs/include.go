package mdllconfigs

import (
	"github.com/reusee/mdll/cmds"
	"github.com/reusee/mdll/configs"
)

// IncludePaths are searched in order. Flags come first, then every config
// file's list, most specific file first.
type IncludePaths []string

var includePathFlag = cmds.Collect[string]("-I", "add an include search directory")

func (Module) IncludePaths(
	loader configs.Loader,
) (ret IncludePaths) {
	ret = append(ret, *includePathFlag...)
	for paths := range configs.All[[]string](loader, "include_paths") {
		ret = append(ret, paths...)
	}
	return
}

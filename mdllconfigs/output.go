package mdllconfigs

import (
	"runtime"

	"github.com/reusee/mdll/cmds"
	"github.com/reusee/mdll/configs"
	"github.com/reusee/mdll/vars"
)

type OutputSuffix string

var _ configs.Configurable = OutputSuffix("")

func (OutputSuffix) ConfigPath() string {
	return "output_suffix"
}

const DefaultOutputSuffix = ".txt"

var outputSuffixFlag = cmds.Var[string]("-suffix", "output file name suffix")

func (Module) OutputSuffix(
	loader configs.Loader,
) OutputSuffix {
	return vars.FirstNonZero(
		OutputSuffix(*outputSuffixFlag),
		configs.Get[OutputSuffix](loader),
		DefaultOutputSuffix,
	)
}

type Jobs int

var _ configs.Configurable = Jobs(0)

func (Jobs) ConfigPath() string {
	return "jobs"
}

var jobsFlag = cmds.Var[int]("-jobs", "documents expanded concurrently")

func (Module) Jobs(
	loader configs.Loader,
) Jobs {
	return vars.FirstNonZero(
		Jobs(max(*jobsFlag, 0)),
		configs.Get[Jobs](loader),
		Jobs(runtime.NumCPU()),
	)
}

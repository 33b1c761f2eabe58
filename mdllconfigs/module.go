package mdllconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/modes"
)

type Module struct {
	dscope.Module
	Logs  logs.Module
	Modes modes.Module
}

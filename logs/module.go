package logs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mdll/modes"
)

type Module struct {
	dscope.Module
	Modes modes.Module
}

package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/macros"
)

type Module struct {
	dscope.Module
	Logs   logs.Module
	Macros macros.Module
}

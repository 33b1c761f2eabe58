package sources

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/mdllconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs mdllconfigs.Module
}

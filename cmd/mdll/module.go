package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mdll/debugs"
	"github.com/reusee/mdll/macros"
	"github.com/reusee/mdll/mdllconfigs"
	"github.com/reusee/mdll/sources"
)

type Module struct {
	dscope.Module
	Macros  macros.Module
	Sources sources.Module
	Debugs  debugs.Module
	Configs mdllconfigs.Module
}

package macros

import (
	"github.com/reusee/mdll/cmds"
	"github.com/reusee/mdll/configs"
	"github.com/reusee/mdll/vars"
)

// Scope decides whether macros defined while expanding a body stay visible
// to the caller after the expansion returns.
type Scope string

const (
	// definitions die with the expansion
	ScopeIsolated Scope = "isolated"
	// definitions are merged into the enclosing table
	ScopePropagate Scope = "propagate"
)

var _ configs.Configurable = Scope("")

func (Scope) ConfigPath() string {
	return "macro_scope"
}

func (s Scope) Valid() bool {
	return s == ScopeIsolated || s == ScopePropagate
}

var scopeFlag = cmds.Var[string]("-scope", "macro scope: isolated or propagate")

func (Module) Scope(
	loader configs.Loader,
) Scope {
	return vars.FirstNonZero(
		Scope(*scopeFlag),
		configs.Get[Scope](loader),
		ScopeIsolated,
	)
}

type MaxDepth int

var _ configs.Configurable = MaxDepth(0)

func (MaxDepth) ConfigPath() string {
	return "max_depth"
}

const DefaultMaxDepth = 1000

var maxDepthFlag = cmds.Var[int]("-max-depth", "maximum expansion nesting")

// MaxDepth passes a negative flag value on, Run rejects it.
func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	return vars.FirstNonZero(
		MaxDepth(*maxDepthFlag),
		configs.Get[MaxDepth](loader),
		DefaultMaxDepth,
	)
}

type NameFormat string

var _ configs.Configurable = NameFormat("")

func (NameFormat) ConfigPath() string {
	return "generic_name_format"
}

var nameFormatFlag = cmds.Var[string]("-name-format", "format of generated names, placeholder and counter")

func (Module) NameFormat(
	loader configs.Loader,
) NameFormat {
	return vars.FirstNonZero(
		NameFormat(*nameFormatFlag),
		configs.Get[NameFormat](loader),
		DefaultNameFormat,
	)
}

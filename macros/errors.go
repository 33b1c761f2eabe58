package macros

import "errors"

var (
	ErrUndefinedMacro         = errors.New("undefined macro")
	ErrUnterminatedDefinition = errors.New("unterminated macro definition")
	ErrUnterminatedBlock      = errors.New("unterminated block argument")
	ErrRecursionLimit         = errors.New("expansion nested too deep")
	ErrBadScope               = errors.New("bad macro scope")
	ErrBadMaxDepth            = errors.New("bad max depth")
	ErrBadNameFormat          = errors.New("bad generated name format")
)

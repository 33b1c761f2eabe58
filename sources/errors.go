package sources

import (
	"errors"

	"github.com/reusee/e5"
)

var (
	ErrIncludeCycle = errors.New("include cycle")
	ErrNotText      = errors.New("not a text document")
	ErrBadInclude   = errors.New("bad include directive")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

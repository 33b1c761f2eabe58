package main

import (
	"errors"

	"github.com/reusee/e5"
)

var (
	ErrNoInput        = errors.New("no input")
	ErrOutputConflict = errors.New("-o needs exactly one input")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

package tokens

import (
	"errors"
	"strings"
)

type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Line == 0 {
		return p.Err.Error()
	}

	var sb strings.Builder
	sb.WriteString(p.Err.Error())
	sb.WriteString(" at ")
	sb.WriteString(p.Pos.String())

	if p.Pos.Source != nil {
		idx := p.Pos.Line - 1
		if idx >= 0 && idx < len(p.Pos.Source.Lines) {
			sb.WriteString("\n")
			sb.WriteString(strings.TrimSpace(p.Pos.Source.Lines[idx]))
		}
	}

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

// WithPos attaches pos to err. The innermost position wins.
func WithPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	var posErr PosError
	if errors.As(err, &posErr) {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}

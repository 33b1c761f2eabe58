package modes

import "github.com/reusee/dscope"

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

// Module declares the dependency on Mode. Provide it with ForProduction or ForTest.
type Module struct {
	dscope.Module
}

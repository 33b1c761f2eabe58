package macros

import "fmt"

const DefaultNameFormat = "%s_%d"

// Namer generates the hygienic names of one top-level run. Every nested
// expansion draws from the same counter.
type Namer struct {
	format string
	count  int
}

func NewNamer(format string) *Namer {
	if format == "" {
		format = DefaultNameFormat
	}
	return &Namer{
		format: format,
	}
}

func (n *Namer) Fresh(base string) string {
	n.count++
	return fmt.Sprintf(n.format, base, n.count)
}

func (n *Namer) Count() int {
	return n.count
}

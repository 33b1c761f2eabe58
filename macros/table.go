package macros

import (
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/mdll/tokens"
)

type Macro struct {
	Name string
	// positional parameters and block parameters, in declaration order
	Params []tokens.Token
	// captured verbatim, expanded at each call site
	Body []tokens.Line
	Pos  tokens.Pos
}

func (m *Macro) Split() (positional []tokens.Token, blocks []tokens.Token) {
	for _, param := range m.Params {
		if param.Kind == tokens.KindBlockParam {
			blocks = append(blocks, param)
		} else {
			positional = append(positional, param)
		}
	}
	return
}

// Table maps macro names to definitions. Macros are never mutated after
// insertion, so clones share them.
type Table struct {
	macros map[string]*Macro
}

func NewTable() *Table {
	return &Table{
		macros: make(map[string]*Macro),
	}
}

// Define inserts macro, replacing any previous definition of the same name.
func (t *Table) Define(macro *Macro) {
	t.macros[macro.Name] = macro
}

func (t *Table) Lookup(name string) (*Macro, error) {
	macro, ok := t.macros[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedMacro, name)
	}
	return macro, nil
}

func (t *Table) Clone() *Table {
	return &Table{
		macros: maps.Clone(t.macros),
	}
}

// Merge copies every definition of other into t.
func (t *Table) Merge(other *Table) {
	maps.Copy(t.macros, other.macros)
}

func (t *Table) Len() int {
	return len(t.macros)
}

func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.macros))
}

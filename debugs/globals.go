package debugs

import (
	"strings"

	"github.com/reusee/mdll/macros"
	"github.com/reusee/mdll/tokens"
)

// Globals exposes an expansion result to starlark.
// Tokens, lines and positions are rendered in their surface syntax.
func Globals(result *macros.Result) map[string]any {
	lines := make([]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, line.String())
	}

	defs := make(map[string]any, result.Macros.Len())
	for _, name := range result.Macros.Names() {
		macro, err := result.Macros.Lookup(name)
		if err != nil {
			continue
		}
		defs[name] = macro
	}

	return map[string]any{
		"lines":      lines,
		"macros":     defs,
		"expansions": result.Expansions,
		"generated":  result.Generated,

		"lookup": func(name string) string {
			macro, err := result.Macros.Lookup(name)
			if err != nil {
				return ""
			}
			return definitionText(macro)
		},
	}
}

// definitionText renders macro in the syntax that defines it
func definitionText(macro *macros.Macro) string {
	header := tokens.Line{
		Tokens: append(
			[]tokens.Token{{Kind: tokens.KindMacroDef, Text: macro.Name}},
			macro.Params...,
		),
	}
	var b strings.Builder
	b.WriteString(header.String())
	b.WriteString("\n")
	for _, line := range macro.Body {
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	b.WriteString("!!")
	return b.String()
}

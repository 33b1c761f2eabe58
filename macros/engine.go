package macros

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reusee/mdll/tokens"
)

// run is shared by every engine instance of one top-level expansion
type run struct {
	logger     *slog.Logger
	namer      *Namer
	scope      Scope
	maxDepth   int
	expansions int
}

type engine struct {
	*run
	lines []tokens.Line
	pos   int
	table *Table
	depth int
}

func (e *engine) loop(ctx context.Context) ([]tokens.Line, error) {
	var result []tokens.Line
	for e.pos < len(e.lines) {
		line := e.lines[e.pos]
		e.pos++
		if len(line.Tokens) == 0 {
			continue
		}

		head := line.Head()
		switch head.Kind {

		case tokens.KindMacroDef:
			if err := e.define(ctx, line); err != nil {
				return nil, err
			}

		case tokens.KindMacroExpand:
			expanded, err := e.expand(ctx, line)
			if err != nil {
				return nil, err
			}
			result = append(result, expanded...)

		case tokens.KindMacroDefEnd,
			tokens.KindMacroExpandLabel,
			tokens.KindBlockParam,
			tokens.KindGenericIdentifier,
			tokens.KindGenericLabel:
			// meaningful only inside a body being expanded
			e.logger.DebugContext(ctx, "drop stray line",
				"kind", head.Kind,
				"pos", line.Pos,
			)

		case tokens.KindKeyword:
			if head.Text == tokens.KeywordBegin || head.Text == tokens.KeywordEnd {
				continue
			}
			result = append(result, line)

		case tokens.KindNumber,
			tokens.KindString,
			tokens.KindIdentifier,
			tokens.KindLabel,
			tokens.KindUnknown:
			result = append(result, line)

		default:
			panic(fmt.Errorf("bad token kind: %v", head.Kind))
		}
	}
	return result, nil
}

// define captures the body up to the matching `!!`. Definitions nested in the
// body are captured with it.
func (e *engine) define(ctx context.Context, line tokens.Line) error {
	head := line.Head()
	macro := &Macro{
		Name:   head.Text,
		Params: line.Tokens[1:],
		Pos:    line.Pos,
	}

	depth := 0
	for {
		if e.pos >= len(e.lines) {
			return tokens.WithPos(
				fmt.Errorf("%w: %s", ErrUnterminatedDefinition, macro.Name),
				line.Pos,
			)
		}
		bodyLine := e.lines[e.pos]
		e.pos++

		switch bodyLine.Head().Kind {
		case tokens.KindMacroDef:
			depth++
		case tokens.KindMacroDefEnd:
			if depth == 0 {
				e.table.Define(macro)
				e.logger.DebugContext(ctx, "define macro",
					"name", macro.Name,
					"params", len(macro.Params),
					"body", len(macro.Body),
					"depth", e.depth,
				)
				return nil
			}
			depth--
		}

		macro.Body = append(macro.Body, bodyLine)
	}
}

func (e *engine) expand(ctx context.Context, line tokens.Line) ([]tokens.Line, error) {
	name := line.Head().Text
	macro, err := e.table.Lookup(name)
	if err != nil {
		return nil, tokens.WithPos(err, line.Pos)
	}

	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return nil, tokens.WithPos(
			fmt.Errorf("%w: %s at depth %d", ErrRecursionLimit, name, e.depth+1),
			line.Pos,
		)
	}

	positional, blockParams := macro.Split()

	// extra arguments are ignored, missing ones leave the parameter unbound
	args := make(map[string]tokens.Token, len(positional))
	callArgs := line.Tokens[1:]
	for i, param := range positional {
		if i >= len(callArgs) {
			break
		}
		args[param.Text] = callArgs[i]
	}

	blocks := make(map[string][]tokens.Line, len(blockParams))
	for _, param := range blockParams {
		block, err := e.captureBlock(line, param)
		if err != nil {
			return nil, err
		}
		blocks[param.Text] = block
	}

	body := e.rewrite(macro, args, blocks)

	e.expansions++
	child := &engine{
		run:   e.run,
		lines: body,
		table: e.table.Clone(),
		depth: e.depth + 1,
	}
	result, err := child.loop(ctx)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", name, err)
	}

	if e.scope == ScopePropagate {
		e.table.Merge(child.table)
	}

	e.logger.DebugContext(ctx, "expand macro",
		"name", name,
		"depth", child.depth,
		"lines", len(result),
	)

	return result, nil
}

// captureBlock reads one `$begin` ... `$end` region following the call line.
// Nested regions are kept in the block.
func (e *engine) captureBlock(call tokens.Line, param tokens.Token) ([]tokens.Line, error) {
	unterminated := func() error {
		return tokens.WithPos(
			fmt.Errorf("%w: %s of %s", ErrUnterminatedBlock, param, call.Head()),
			call.Pos,
		)
	}

	if e.pos >= len(e.lines) {
		return nil, unterminated()
	}
	if e.lines[e.pos].Head().IsKeyword(tokens.KeywordBegin) {
		e.pos++
	}

	var block []tokens.Line
	depth := 0
	for {
		if e.pos >= len(e.lines) {
			return nil, unterminated()
		}
		line := e.lines[e.pos]
		e.pos++

		head := line.Head()
		switch {
		case head.IsKeyword(tokens.KeywordBegin):
			depth++
		case head.IsKeyword(tokens.KeywordEnd):
			if depth == 0 {
				return block, nil
			}
			depth--
		}

		block = append(block, line)
	}
}

// rewrite substitutes arguments, blocks and hygienic names into the body.
// Within one call, a placeholder resolves to the same name as a label and as
// an identifier. Placeholders inside nested definitions are left for the
// calls of those macros.
func (e *engine) rewrite(
	macro *Macro,
	args map[string]tokens.Token,
	blocks map[string][]tokens.Line,
) (ret []tokens.Line) {

	names := make(map[string]string)
	hygienic := func(placeholder string) string {
		if name, ok := names[placeholder]; ok {
			return name
		}
		name := e.namer.Fresh(placeholder)
		names[placeholder] = name
		return name
	}

	nested := 0
	for _, line := range macro.Body {
		head := line.Head()
		if head.Kind == tokens.KindMacroDef {
			nested++
		}

		if len(line.Tokens) == 1 && head.Kind == tokens.KindBlockParam {
			if block, ok := blocks[head.Text]; ok {
				ret = append(ret, block...)
				continue
			}
		}

		rewritten := make([]tokens.Token, 0, len(line.Tokens))
		for _, token := range line.Tokens {
			switch token.Kind {

			case tokens.KindMacroExpand:
				if arg, ok := args[token.Text]; ok {
					token = arg
				}

			case tokens.KindMacroExpandLabel:
				if arg, ok := args[token.Text]; ok {
					token = tokens.Label(arg.Text)
				}

			case tokens.KindGenericIdentifier:
				if nested == 0 {
					token = tokens.Identifier(hygienic(token.Text))
				}

			case tokens.KindGenericLabel:
				if nested == 0 {
					token = tokens.Label(hygienic(token.Text))
				}

			}
			rewritten = append(rewritten, token)
		}

		ret = append(ret, tokens.Line{
			Pos:    line.Pos,
			Tokens: rewritten,
		})

		if head.Kind == tokens.KindMacroDefEnd && nested > 0 {
			nested--
		}
	}

	return
}

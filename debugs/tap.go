package debugs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/macros"
	"github.com/reusee/mdll/tokens"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Tap starts an interactive starlark session with globals predeclared.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
	expand macros.Expand,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, predeclared(ctx, expand, globals))
	}
}

// Script runs a starlark program with globals predeclared.
// print() goes to the logger.
type Script func(ctx context.Context, name string, src []byte, globals map[string]any) error

func (Module) Script(
	logger logs.Logger,
	expand macros.Expand,
) Script {
	return func(ctx context.Context, name string, src []byte, globals map[string]any) error {
		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg, "script", name)
			},
		}
		if _, err := starlark.ExecFileOptions(
			fileOptions, thread, name, src,
			predeclared(ctx, expand, globals),
		); err != nil {
			return fmt.Errorf("script %s: %w", name, err)
		}
		return nil
	}
}

func predeclared(ctx context.Context, expand macros.Expand, globals map[string]any) starlark.StringDict {
	mappings := make(starlark.StringDict)
	for name, value := range globals {
		mappings[name] = toStarlarkValue(value)
	}
	if _, ok := mappings["expand"]; !ok {
		mappings["expand"] = expandBuiltin(ctx, expand)
	}
	return mappings
}

// expand(text) runs the engine on text and returns the output text
func expandBuiltin(ctx context.Context, expand macros.Expand) *starlark.Builtin {
	return starlark.NewBuiltin("expand", func(
		thread *starlark.Thread,
		fn *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var text string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &text); err != nil {
			return nil, err
		}
		result, err := expand(ctx, tokens.Tokenize(tokens.NewSource(thread.Name, text)))
		if err != nil {
			return nil, err
		}
		return starlark.String(tokens.Stringify(result.Lines)), nil
	})
}

package macros

import (
	"context"

	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/tokens"
)

type Expand func(ctx context.Context, lines []tokens.Line) (*Result, error)

func (Module) Expand(
	logger logs.Logger,
	newSpan logs.NewSpan,
	scope Scope,
	maxDepth MaxDepth,
	nameFormat NameFormat,
) Expand {
	return func(ctx context.Context, lines []tokens.Line) (*Result, error) {
		ctx, _ = newSpan(ctx, "expand")

		result, err := Run(ctx, lines, Options{
			Scope:      scope,
			MaxDepth:   int(maxDepth),
			NameFormat: string(nameFormat),
			Logger:     logger,
		})
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}

		logger.InfoContext(ctx, "expanded",
			"input", len(lines),
			"output", len(result.Lines),
			"macros", result.Macros.Len(),
			"expansions", result.Expansions,
			"generated", result.Generated,
		)

		return result, nil
	}
}

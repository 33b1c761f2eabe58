package macros

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reusee/mdll/tokens"
)

type Options struct {
	// defaults to ScopeIsolated
	Scope Scope
	// maximum nesting of expansions, 0 for unlimited
	MaxDepth int
	// defaults to DefaultNameFormat
	NameFormat string
	Logger     *slog.Logger
}

type Result struct {
	Lines []tokens.Line
	// the top-level table after the run
	Macros     *Table
	Expansions int
	Generated  int
}

// Run expands every macro in lines. On error nothing is returned.
func Run(ctx context.Context, lines []tokens.Line, options Options) (*Result, error) {
	scope := options.Scope
	if scope == "" {
		scope = ScopeIsolated
	}
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrBadScope, scope)
	}

	if options.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadMaxDepth, options.MaxDepth)
	}
	if err := checkNameFormat(options.NameFormat); err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := &run{
		logger:   logger,
		namer:    NewNamer(options.NameFormat),
		scope:    scope,
		maxDepth: options.MaxDepth,
	}
	top := &engine{
		run:   state,
		lines: lines,
		table: NewTable(),
	}

	result, err := top.loop(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Lines:      result,
		Macros:     top.table,
		Expansions: state.expansions,
		Generated:  state.namer.Count(),
	}, nil
}

// checkNameFormat rejects formats whose names repeat across counter values or
// do not read back as one identifier.
func checkNameFormat(format string) error {
	if format == "" {
		return nil
	}
	first := fmt.Sprintf(format, "x", 1)
	second := fmt.Sprintf(format, "x", 2)
	if first == second ||
		strings.Contains(first, "%!") ||
		tokens.Classify(first).Kind != tokens.KindIdentifier {
		return fmt.Errorf("%w: %q", ErrBadNameFormat, format)
	}
	return nil
}

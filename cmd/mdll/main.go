package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/mdll/cmds"
	"github.com/reusee/mdll/configs"
	"github.com/reusee/mdll/modes"
	"golang.org/x/term"
)

var (
	inputs        []string
	outputFlag    = cmds.Var[string]("-o", "output path, for a single input")
	stdoutFlag    = cmds.Switch("-stdout", "print outputs instead of writing files")
	tapFlag       = cmds.Switch("-tap", "inspect each result in a starlark repl")
	tapScriptFlag = cmds.Var[string]("-tap-script", "run a starlark script over each result")
	watchFlag     = cmds.Switch("-watch", "expand again when a file beside an input changes")
)

func init() {
	cmds.Define("expand", cmds.Func(func(paths ...string) {
		inputs = append(inputs, paths...)
	}).Desc("expand documents"))
}

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := Request{
		Inputs:    inputs,
		Output:    *outputFlag,
		Stdout:    *stdoutFlag,
		Stdin:     stdinReader(),
		Writer:    os.Stdout,
		Tap:       *tapFlag,
		TapScript: *tapScriptFlag,
	}

	var err error
	scope.Call(func(
		loader configs.Loader,
	) {
		// settings providers panic on malformed config files
		err = loader.Validate()
	})
	if err == nil {
		scope.Call(func(
			process Process,
			watch Watch,
		) {
			if *watchFlag {
				err = watch(ctx, req)
			} else {
				err = process(ctx, req)
			}
		})
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func stdinReader() io.Reader {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return os.Stdin
}

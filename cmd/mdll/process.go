package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reusee/mdll/debugs"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/macros"
	"github.com/reusee/mdll/mdllconfigs"
	"github.com/reusee/mdll/sources"
	"github.com/reusee/mdll/tokens"
	"golang.org/x/sync/errgroup"
)

const stdinName = "<stdin>"

type Request struct {
	Inputs []string
	// overrides the output path of a single input
	Output string
	Stdout bool
	// read when there are no inputs, nil for a terminal
	Stdin     io.Reader
	Writer    io.Writer
	Tap       bool
	TapScript string
}

type Document struct {
	Name string
	// empty for Writer
	Output string
	Result *macros.Result
}

// Process expands every input of a request. Outputs are written only when
// every input expanded and every inspection passed.
type Process func(ctx context.Context, req Request) error

func (Module) Process(
	logger logs.Logger,
	load sources.Load,
	loadReader sources.LoadReader,
	expand macros.Expand,
	suffix mdllconfigs.OutputSuffix,
	jobs mdllconfigs.Jobs,
	tap debugs.Tap,
	script debugs.Script,
) Process {
	return func(ctx context.Context, req Request) error {
		var docs []*Document

		if len(req.Inputs) == 0 {
			if req.Stdin == nil {
				return ErrNoInput
			}
			if req.Output != "" {
				return ErrOutputConflict
			}
			lines, err := loadReader(stdinName, req.Stdin)
			if err != nil {
				return err
			}
			result, err := expand(ctx, lines)
			if err != nil {
				return err
			}
			docs = append(docs, &Document{
				Name:   stdinName,
				Result: result,
			})

		} else {
			if req.Output != "" && len(req.Inputs) > 1 {
				return ErrOutputConflict
			}
			docs = make([]*Document, len(req.Inputs))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(int(jobs))
			for i, path := range req.Inputs {
				g.Go(func() error {
					lines, err := load(path)
					if err != nil {
						return err
					}
					result, err := expand(gctx, lines)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					docs[i] = &Document{
						Name:   path,
						Output: outputPath(req, path, suffix),
						Result: result,
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		}

		// inspect
		if req.TapScript != "" {
			src, err := os.ReadFile(req.TapScript)
			if err != nil {
				return wrap(err)
			}
			for _, doc := range docs {
				if err := script(ctx, req.TapScript, src, documentGlobals(doc)); err != nil {
					return err
				}
			}
		}
		if req.Tap {
			for _, doc := range docs {
				tap(ctx, doc.Name, documentGlobals(doc))
			}
		}

		// write
		var files []*Document
		for _, doc := range docs {
			if doc.Output != "" {
				files = append(files, doc)
				continue
			}
			if _, err := io.WriteString(req.Writer, render(doc.Result)); err != nil {
				return wrap(err)
			}
		}
		if err := writeFiles(files); err != nil {
			return err
		}
		for _, doc := range files {
			logger.InfoContext(ctx, "written",
				"input", doc.Name,
				"output", doc.Output,
				"lines", len(doc.Result.Lines),
			)
		}

		return nil
	}
}

// outputPath is where the output of input goes, empty for Writer
func outputPath(req Request, input string, suffix mdllconfigs.OutputSuffix) string {
	switch {
	case req.Stdout:
		return ""
	case req.Output != "":
		return req.Output
	}
	return input + string(suffix)
}

func documentGlobals(doc *Document) map[string]any {
	globals := debugs.Globals(doc.Result)
	globals["document"] = doc.Name
	return globals
}

// render is the output text, newline terminated unless empty
func render(result *macros.Result) string {
	text := tokens.Stringify(result.Lines)
	if text != "" {
		text += "\n"
	}
	return text
}

// replaced in tests
var rename = os.Rename

type pendingFile struct {
	temp   string
	backup string
	output string
	placed bool
}

// writeFiles writes every output to a temporary file beside it, moves the
// existing outputs aside, then renames the temporary files into place. On
// failure the previous outputs are restored and the temporary files removed.
func writeFiles(docs []*Document) (err error) {
	var files []*pendingFile
	defer func() {
		for _, file := range files {
			if err == nil {
				if file.backup != "" {
					_ = os.Remove(file.backup)
				}
				continue
			}
			if file.placed {
				_ = os.Remove(file.output)
			}
			if file.backup != "" {
				_ = os.Rename(file.backup, file.output)
			}
			_ = os.Remove(file.temp)
		}
	}()

	for _, doc := range docs {
		f, err := os.CreateTemp(filepath.Dir(doc.Output), "."+filepath.Base(doc.Output)+".*")
		if err != nil {
			return wrap(err)
		}
		files = append(files, &pendingFile{
			temp:   f.Name(),
			output: doc.Output,
		})
		err = f.Chmod(0644)
		if err == nil {
			_, err = io.WriteString(f, render(doc.Result))
		}
		err = errors.Join(err, f.Close())
		if err != nil {
			return wrap(err)
		}
	}

	for _, file := range files {
		if _, err := os.Lstat(file.output); err != nil {
			continue
		}
		backup := file.temp + ".old"
		if err := rename(file.output, backup); err != nil {
			return wrap(err)
		}
		file.backup = backup
	}

	for _, file := range files {
		if err := rename(file.temp, file.output); err != nil {
			return wrap(err)
		}
		file.placed = true
	}

	return nil
}

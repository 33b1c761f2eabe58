package sources

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/mdllconfigs"
	"github.com/reusee/mdll/tokens"
)

// Load reads and tokenizes a document, splicing in `$include "path"` lines.
type Load func(path string) ([]tokens.Line, error)

// LoadReader is Load for an already opened document. Includes resolve
// against the working directory.
type LoadReader func(name string, r io.Reader) ([]tokens.Line, error)

func (Module) Load(
	logger logs.Logger,
	includePaths mdllconfigs.IncludePaths,
) Load {
	return func(path string) ([]tokens.Line, error) {
		l := &loader{
			logger:       logger,
			includePaths: includePaths,
			visiting:     make(map[string]bool),
		}
		return l.loadFile(path, "")
	}
}

func (Module) LoadReader(
	logger logs.Logger,
	includePaths mdllconfigs.IncludePaths,
) LoadReader {
	return func(name string, r io.Reader) ([]tokens.Line, error) {
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, wrap(err)
		}
		l := &loader{
			logger:       logger,
			includePaths: includePaths,
			visiting:     make(map[string]bool),
		}
		return l.loadContent(name, content, "")
	}
}

type loader struct {
	logger       logs.Logger
	includePaths []string
	visiting     map[string]bool
}

func (l *loader) loadFile(path string, fromDir string) ([]tokens.Line, error) {
	fullPath := resolve(path, fromDir, l.includePaths)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, wrap(err)
	}
	if l.visiting[absPath] {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, path)
	}
	l.visiting[absPath] = true
	defer delete(l.visiting, absPath)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, wrap(fmt.Errorf("read %s: %w", path, err))
	}

	l.logger.Debug("load source", "path", fullPath, "bytes", len(content))

	return l.loadContent(fullPath, content, filepath.Dir(fullPath))
}

// resolve looks next to the including file first, then in the working
// directory, then in the include paths. A path found nowhere resolves to the
// first candidate.
func resolve(path string, fromDir string, includePaths []string) string {
	if filepath.IsAbs(path) {
		return path
	}
	var candidates []string
	if fromDir != "" {
		candidates = append(candidates, filepath.Join(fromDir, path))
	}
	candidates = append(candidates, path)
	for _, dir := range includePaths {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func (l *loader) loadContent(name string, content []byte, dir string) ([]tokens.Line, error) {
	if err := checkText(name, content); err != nil {
		return nil, err
	}

	var ret []tokens.Line
	for _, line := range tokens.Tokenize(tokens.NewSource(name, string(content))) {
		if !line.Head().IsKeyword(tokens.KeywordInclude) {
			ret = append(ret, line)
			continue
		}

		includePath, err := includeTarget(line)
		if err != nil {
			return nil, tokens.WithPos(err, line.Pos)
		}
		included, err := l.loadFile(includePath, dir)
		if err != nil {
			return nil, tokens.WithPos(err, line.Pos)
		}
		l.logger.Debug("include",
			"path", includePath,
			"lines", len(included),
			"from", line.Pos,
		)
		ret = append(ret, included...)
	}

	return ret, nil
}

func includeTarget(line tokens.Line) (string, error) {
	if len(line.Tokens) != 2 || line.Tokens[1].Kind != tokens.KindString {
		return "", fmt.Errorf("%w: %s", ErrBadInclude, line)
	}
	path, err := strconv.Unquote(line.Tokens[1].Text)
	if err != nil {
		// no escapes in string tokens, strip the quotes
		path = strings.Trim(line.Tokens[1].Text, `"`)
	}
	if path == "" {
		return "", fmt.Errorf("%w: %s", ErrBadInclude, line)
	}
	return path, nil
}

func checkText(name string, content []byte) error {
	if len(content) == 0 {
		return nil
	}
	for t := mimetype.Detect(content); t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (%s)", ErrNotText, name, mimetype.Detect(content))
}

package macros

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/mdll/tokens"
)

func expandString(src string, options Options) (string, *Result, error) {
	lines := tokens.Tokenize(tokens.NewSource("test.mll", src))
	result, err := Run(context.Background(), lines, options)
	if err != nil {
		return "", nil, err
	}
	return tokens.Stringify(result.Lines), result, nil
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "no macros",
			src: `
				set i 0.0
				  op add i i 1
				print "Hi there!"
				jump loop: a+b
			`,
			expected: "set i 0.0\nop add i i 1\nprint \"Hi there!\"\njump loop: a+b",
		},
		{
			name: "positional",
			src: `
				!greet name
				name!
				!!
				greet! world
			`,
			expected: "world",
		},
		{
			name: "positional inside line",
			src: `
				!greet name
				Identifier name!
				!!
				greet! world
			`,
			expected: "Identifier world",
		},
		{
			name: "missing and extra arguments",
			src: `
				!m a b
				print a! b!
				!!
				m! 1
				m! 1 2 3
			`,
			expected: "print 1 b!\nprint 1 2",
		},
		{
			name: "block",
			src: `
				!m &body
				&body
				!!
				m!
				$begin
				foo
				bar
				$end
			`,
			expected: "foo\nbar",
		},
		{
			name: "nested block delimiters",
			src: `
				!m &body
				before
				&body
				after
				!!
				m!
				$begin
				foo
				$begin
				bar
				$end
				baz
				$end
				rest
			`,
			expected: "before\nfoo\nbar\nbaz\nafter\nrest",
		},
		{
			name: "blocks and positional",
			src: `
				!if cond &then &else
				jnz cond! #else
				&then
				jmp #done
				#else:
				&else
				#done:
				!!
				if! x
				$begin
				a
				$end
				$begin
				b
				$end
			`,
			expected: "jnz x else_1\na\njmp done_2\nelse_1:\nb\ndone_2:",
		},
		{
			name: "positional parameters counted apart from blocks",
			src: `
				!m &body x
				x!
				&body
				!!
				m! 1
				$begin
				foo
				$end
			`,
			expected: "1\nfoo",
		},
		{
			name: "label parameter",
			src: `
				!m lbl
				lbl!:
				jmp lbl!
				!!
				m! start
			`,
			expected: "start:\njmp start",
		},
		{
			name: "label parameter in line",
			src: `
				!m lbl
				lbl!: nop
				!!
				m! start
			`,
			expected: "start: nop",
		},
		{
			name: "unbound label parameter",
			src: `
				!m lbl
				lbl!:
				nop
				!!
				m!
			`,
			expected: "nop",
		},
		{
			name: "unused block parameter reference",
			src: `
				!m
				&body
				nop
				!!
				m!
			`,
			expected: "nop",
		},
		{
			name: "nested macro calls",
			src: `
				!inc x
				op add x! x! 1
				!!
				!twice x
				inc! x!
				inc! x!
				!!
				twice! i
			`,
			expected: "op add i i 1\nop add i i 1",
		},
		{
			name: "definition in body",
			src: `
				!outer x
				!inner y
				say y!
				!!
				inner! x!
				!!
				outer! hi
			`,
			expected: "say hi",
		},
		{
			name: "macro name as argument",
			src: `
				!hello
				hello
				!!
				!call f
				f!
				!!
				call! hello!
			`,
			expected: "hello",
		},
		{
			name: "redefinition",
			src: `
				!m
				one
				!!
				m!
				!m
				two
				!!
				m!
			`,
			expected: "one\ntwo",
		},
		{
			name: "stray lines",
			src: `
				!!
				lbl!:
				&body
				#x
				#y:
				$begin
				$end
				$other keyword
				foo
			`,
			expected: "$other keyword\nfoo",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, _, err := expandString(test.src, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("got\n%s\nexpected\n%s", got, test.expected)
			}
		})
	}
}

func TestHygiene(t *testing.T) {
	got, result, err := expandString(`
		!loop &body
		#top:
		&body
		jmp #top
		!!
		loop!
		$begin
		a
		$end
		loop!
		$begin
		b
		$end
	`, Options{})
	if err != nil {
		t.Fatal(err)
	}
	expected := "top_1:\na\njmp top_1\ntop_2:\nb\njmp top_2"
	if got != expected {
		t.Fatalf("got\n%s", got)
	}
	if result.Generated != 2 {
		t.Fatalf("got %d", result.Generated)
	}
	if result.Expansions != 2 {
		t.Fatalf("got %d", result.Expansions)
	}
}

func TestHygieneAcrossNesting(t *testing.T) {
	got, _, err := expandString(`
		!inner
		#tmp:
		!!
		!outer
		#tmp:
		inner!
		jmp #tmp
		!!
		outer!
		outer!
	`, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 6 {
		t.Fatalf("got\n%s", got)
	}
	seen := make(map[string]bool)
	for _, line := range lines {
		if !strings.HasSuffix(line, ":") {
			continue
		}
		if seen[line] {
			t.Fatalf("duplicated label %s in\n%s", line, got)
		}
		seen[line] = true
	}
	if len(seen) != 4 {
		t.Fatalf("got\n%s", got)
	}
	// the outer jump refers to the outer label
	if lines[0] != strings.TrimPrefix(lines[2], "jmp ")+":" {
		t.Fatalf("got\n%s", got)
	}
}

func TestNameFormat(t *testing.T) {
	got, _, err := expandString(`
		!m
		#x: #x
		!!
		m!
	`, Options{
		NameFormat: "__%s%d",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "__x1: __x1" {
		t.Fatalf("got %s", got)
	}
}

func TestUndefinedMacro(t *testing.T) {
	got, result, err := expandString(`
		before
		foo! 1
		after
	`, Options{})
	if !errors.Is(err, ErrUndefinedMacro) {
		t.Fatalf("got %v", err)
	}
	if got != "" || result != nil {
		t.Fatal("should produce nothing")
	}
	var posErr tokens.PosError
	if !errors.As(err, &posErr) {
		t.Fatalf("got %T", err)
	}
	if posErr.Pos.Line != 3 {
		t.Fatalf("got %v", posErr.Pos)
	}
	if !strings.Contains(err.Error(), "undefined macro: foo at test.mll:3") {
		t.Fatalf("got %v", err)
	}
}

func TestUndefinedMacroInBody(t *testing.T) {
	_, _, err := expandString(`
		!m
		bar!
		!!
		m!
	`, Options{})
	if !errors.Is(err, ErrUndefinedMacro) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "expand m: undefined macro: bar at test.mll:3") {
		t.Fatalf("got %v", err)
	}
}

func TestUseBeforeDefinition(t *testing.T) {
	_, _, err := expandString(`
		m!
		!m
		foo
		!!
	`, Options{})
	if !errors.Is(err, ErrUndefinedMacro) {
		t.Fatalf("got %v", err)
	}
}

func TestUnterminatedDefinition(t *testing.T) {
	_, _, err := expandString(`
		!m a
		foo
	`, Options{})
	if !errors.Is(err, ErrUnterminatedDefinition) {
		t.Fatalf("got %v", err)
	}

	// a nested definition consumes the only terminator
	_, _, err = expandString(`
		!m
		!n
		!!
	`, Options{})
	if !errors.Is(err, ErrUnterminatedDefinition) {
		t.Fatalf("got %v", err)
	}
}

func TestUnterminatedBlock(t *testing.T) {
	for _, src := range []string{
		`
		!m &body
		&body
		!!
		m!
		`,
		`
		!m &body
		&body
		!!
		m!
		$begin
		foo
		`,
		`
		!m &body
		&body
		!!
		m!
		$begin
		$begin
		foo
		$end
		`,
	} {
		_, _, err := expandString(src, Options{})
		if !errors.Is(err, ErrUnterminatedBlock) {
			t.Fatalf("got %v", err)
		}
	}
}

func TestRecursionLimit(t *testing.T) {
	_, _, err := expandString(`
		!r
		r!
		!!
		r!
	`, Options{
		MaxDepth: 10,
	})
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("got %v", err)
	}

	// exactly at the limit
	got, _, err := expandString(`
		!a
		b!
		!!
		!b
		ok
		!!
		a!
	`, Options{
		MaxDepth: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" {
		t.Fatalf("got %s", got)
	}
}

func TestScope(t *testing.T) {
	src := `
		!outer
		!helper x
		help x!
		!!
		!!
		outer!
		helper! me
	`

	_, _, err := expandString(src, Options{
		Scope: ScopeIsolated,
	})
	if !errors.Is(err, ErrUndefinedMacro) {
		t.Fatalf("got %v", err)
	}

	got, result, err := expandString(src, Options{
		Scope: ScopePropagate,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "help me" {
		t.Fatalf("got %s", got)
	}
	if names := strings.Join(result.Macros.Names(), ","); names != "helper,outer" {
		t.Fatalf("got %s", names)
	}

	_, _, err = expandString(src, Options{
		Scope: "global",
	})
	if !errors.Is(err, ErrBadScope) {
		t.Fatalf("got %v", err)
	}
}

func TestBodyCapturedRaw(t *testing.T) {
	// a body is not examined until the macro is expanded
	got, _, err := expandString(`
		!m
		later!
		!!
		!later
		done
		!!
		m!
	`, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "done" {
		t.Fatalf("got %s", got)
	}
}

func TestEmptyLines(t *testing.T) {
	result, err := Run(context.Background(), []tokens.Line{
		{},
		{Tokens: []tokens.Token{tokens.Identifier("foo")}},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := tokens.Stringify(result.Lines); got != "foo" {
		t.Fatalf("got %s", got)
	}
}

func TestBadNameFormat(t *testing.T) {
	src := `
		!m
		#tmp:
		jump #tmp
		!!
		m!
		m!
	`
	for _, format := range []string{
		"%[1]s",
		"%s %d",
		"%[1]s%%d",
		"%s_%d_%d",
		"%d",
		"%s-%d",
	} {
		_, _, err := expandString(src, Options{
			NameFormat: format,
		})
		if !errors.Is(err, ErrBadNameFormat) {
			t.Fatalf("%s: got %v", format, err)
		}
	}

	got, _, err := expandString(src, Options{
		NameFormat: "%s__%d",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "tmp__1:\njump tmp__1\ntmp__2:\njump tmp__2" {
		t.Fatalf("got %s", got)
	}
}

func TestBadMaxDepth(t *testing.T) {
	_, _, err := expandString("foo", Options{
		MaxDepth: -1,
	})
	if !errors.Is(err, ErrBadMaxDepth) {
		t.Fatalf("got %v", err)
	}
}

func TestNestedDefinitionHygiene(t *testing.T) {
	got, _, err := expandString(`
		!outer x
		!inner
		#l:
		jump #l x!
		!!
		inner!
		inner!
		!!
		outer! 7
	`, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// placeholders are renamed per call of inner, parameters of outer are bound
	if got != "l_1:\njump l_1 7\nl_2:\njump l_2 7" {
		t.Fatalf("got %s", got)
	}
}

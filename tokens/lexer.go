package tokens

import (
	"strings"
	"unicode"
)

type Line struct {
	Pos    Pos
	Tokens []Token
}

// Head is the leading token, or an empty Unknown token for an empty line.
func (l Line) Head() Token {
	if len(l.Tokens) == 0 {
		return Token{}
	}
	return l.Tokens[0]
}

func (l Line) String() string {
	var sb strings.Builder
	for i, token := range l.Tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(token.String())
	}
	return sb.String()
}

// Tokenize splits the source into token lines. Physical lines are trimmed,
// blank lines and comment lines (leading `\`) are dropped.
func Tokenize(source *Source) []Line {
	var lines []Line
	for i, text := range source.Lines {
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, `\`) {
			continue
		}
		lexemes := Lexemes(text)
		if len(lexemes) == 0 {
			continue
		}
		line := Line{
			Pos: Pos{
				Source: source,
				Line:   i + 1,
			},
			Tokens: make([]Token, 0, len(lexemes)),
		}
		for _, lexeme := range lexemes {
			line.Tokens = append(line.Tokens, Classify(lexeme))
		}
		lines = append(lines, line)
	}
	return lines
}

// Lexemes splits a line at whitespace. A double-quoted string is one lexeme
// even when it contains spaces; an unterminated quote runs to the end of line.
func Lexemes(text string) (ret []string) {
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		start := i

		if runes[i] == '"' {
			i++
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			if i < len(runes) {
				// closing quote
				i++
			}
			ret = append(ret, string(runes[start:i]))
			continue
		}

		for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '"' {
			i++
		}
		ret = append(ret, string(runes[start:i]))
	}
	return
}

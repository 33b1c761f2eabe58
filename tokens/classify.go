package tokens

import (
	"strings"
	"unicode"
)

// Classify maps a lexeme to exactly one token kind. Affix markers are stripped
// from the token text. Lexemes of no known shape are Unknown.
func Classify(lexeme string) Token {
	switch {

	case lexeme == "!!":
		return Token{Kind: KindMacroDefEnd}

	case isNumber(lexeme):
		return Token{Kind: KindNumber, Text: lexeme}

	case isString(lexeme):
		return Token{Kind: KindString, Text: lexeme}

	}

	if word, ok := strings.CutPrefix(lexeme, "$"); ok && isWord(word) {
		return Token{Kind: KindKeyword, Text: word}
	}

	if rest, ok := strings.CutPrefix(lexeme, "#"); ok {
		if isWord(rest) {
			return Token{Kind: KindGenericIdentifier, Text: rest}
		}
		if word, ok := strings.CutSuffix(rest, ":"); ok && isWord(word) {
			return Token{Kind: KindGenericLabel, Text: word}
		}
	}

	if word, ok := strings.CutPrefix(lexeme, "&"); ok && isWord(word) {
		return Token{Kind: KindBlockParam, Text: word}
	}

	if word, ok := strings.CutPrefix(lexeme, "!"); ok && isWord(word) {
		return Token{Kind: KindMacroDef, Text: word}
	}

	if word, ok := strings.CutSuffix(lexeme, "!"); ok && isWord(word) {
		return Token{Kind: KindMacroExpand, Text: word}
	}

	if word, ok := strings.CutSuffix(lexeme, "!:"); ok && isWord(word) {
		return Token{Kind: KindMacroExpandLabel, Text: word}
	}

	if word, ok := strings.CutSuffix(lexeme, ":"); ok && isWord(word) {
		return Token{Kind: KindLabel, Text: word}
	}

	if isWord(lexeme) {
		return Token{Kind: KindIdentifier, Text: lexeme}
	}

	return Token{Kind: KindUnknown, Text: lexeme}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// -12, 3.5, +7
func isNumber(s string) bool {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) {
		return false
	}
	if hasDot {
		return isDigits(fracPart)
	}
	return true
}

func isString(s string) bool {
	return len(s) >= 2 &&
		s[0] == '"' &&
		s[len(s)-1] == '"' &&
		!strings.Contains(s[1:len(s)-1], `"`)
}

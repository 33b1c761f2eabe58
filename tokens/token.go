package tokens

import "fmt"

type Token struct {
	Kind Kind
	Text string
}

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNumber
	KindString
	KindIdentifier
	KindLabel
	KindMacroDef
	KindMacroDefEnd
	KindMacroExpand
	KindMacroExpandLabel
	KindBlockParam
	KindKeyword
	KindGenericIdentifier
	KindGenericLabel
)

// structural keywords delimiting block arguments
const (
	KeywordBegin   = "begin"
	KeywordEnd     = "end"
	KeywordInclude = "include"
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindIdentifier:
		return "Identifier"
	case KindLabel:
		return "Label"
	case KindMacroDef:
		return "MacroDef"
	case KindMacroDefEnd:
		return "MacroDefEnd"
	case KindMacroExpand:
		return "MacroExpand"
	case KindMacroExpandLabel:
		return "MacroExpandLabel"
	case KindBlockParam:
		return "BlockParam"
	case KindKeyword:
		return "Keyword"
	case KindGenericIdentifier:
		return "GenericIdentifier"
	case KindGenericLabel:
		return "GenericLabel"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func Number(text string) Token {
	return Token{Kind: KindNumber, Text: text}
}

func Identifier(text string) Token {
	return Token{Kind: KindIdentifier, Text: text}
}

func Label(text string) Token {
	return Token{Kind: KindLabel, Text: text}
}

func Keyword(text string) Token {
	return Token{Kind: KindKeyword, Text: text}
}

// String renders the token in its surface syntax, the inverse of Classify.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber, KindString, KindIdentifier, KindUnknown:
		return t.Text
	case KindLabel:
		return t.Text + ":"
	case KindMacroDef:
		return "!" + t.Text
	case KindMacroDefEnd:
		return "!!"
	case KindMacroExpand:
		return t.Text + "!"
	case KindMacroExpandLabel:
		return t.Text + "!:"
	case KindBlockParam:
		return "&" + t.Text
	case KindKeyword:
		return "$" + t.Text
	case KindGenericIdentifier:
		return "#" + t.Text
	case KindGenericLabel:
		return "#" + t.Text + ":"
	}
	panic(fmt.Errorf("bad token kind: %v", t.Kind))
}

func (t Token) IsKeyword(word string) bool {
	return t.Kind == KindKeyword && t.Text == word
}

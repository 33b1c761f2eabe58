package tokens

import (
	"fmt"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string
}

func NewSource(name string, content string) *Source {
	return &Source{
		Name:    name,
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

// Pos is the physical line a token line was read from, 1-based
type Pos struct {
	Source *Source
	Line   int
}

func (p Pos) String() string {
	if p.Source == nil {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Source.Name, p.Line)
}

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/relation"
	sent "github.com/revelaction/binrel/sentence"
)

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Yellow    = "\033[0;33m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Green256  = "\033[1;38;5;70m"
)

// Renderer writes the relations of one sentence.
type Renderer interface {
	Render(res extract.Result) error
}

// TextRenderer writes the human readable format:
//
//	line: Merkel besuchte die DDR
//	(besuchen.1,besuchen.2)#person#location::Angela_Merkel::DDR|||(passive: False)
//
// followed by a blank line. Colors are only meant for terminals.
type TextRenderer struct {
	W        io.Writer
	HasColor bool
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

func (r *TextRenderer) Render(res extract.Result) error {
	var b strings.Builder
	b.WriteString("line: " + res.Text + "\n")
	for _, rel := range res.Relations {
		b.WriteString(r.relation(rel) + "\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.W, b.String())
	return err
}

func (r *TextRenderer) relation(rel relation.Relation) string {
	if !r.HasColor {
		return rel.Display
	}
	if rel.Negated {
		return Red + rel.Display + Off
	}
	return Green256 + rel.Display + Off
}

// Tokens writes one line per token with the parser annotations.
func (r *TextRenderer) Tokens(s []sent.Token, highlight map[int]bool) error {
	prefix := fmt.Sprintf("✍  %d ", sentenceId(s))
	if _, err := fmt.Fprintf(r.W, "%s%s\n\n", prefix, r.sentence(s, highlight)); err != nil {
		return err
	}

	for _, token := range s {
		if _, err := fmt.Fprintf(r.W, "%20q %15q %8s %6d %6d %12s %s\n", token.Text, token.Lemma, token.Pos, token.Id, token.Head, token.Dep, token.Tag); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) sentence(s []sent.Token, highlight map[int]bool) string {
	words := make([]string, 0, len(s))
	for _, token := range s {
		words = append(words, colorToken(token, highlight, r.HasColor))
	}
	return strings.Join(words, " ")
}

func colorToken(token sent.Token, highlight map[int]bool, hasColor bool) string {
	if !hasColor || !highlight[token.Id] {
		return token.Text
	}
	return Yellow256 + token.Text + Off
}

func sentenceId(s []sent.Token) int {
	if len(s) == 0 {
		return 0
	}
	return s[0].SentenceId
}

// TypeList writes one type tag per line.
func TypeList(w io.Writer, types *relation.TypeSet) error {
	for _, t := range types.Sorted() {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

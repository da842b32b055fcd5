// Package query is an interactive prompt over stored relations. Each input
// line is a predicate pattern; the matching relations are printed.
package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/binrel/render"
	"github.com/revelaction/binrel/storage"
)

const (
	completionThreshold = 2

	// DefaultLimit caps the relations printed per query
	DefaultLimit = 200
)

var ErrEmptyQuery = errors.New("empty query")

type Handler struct {
	Reader   storage.RelationReader
	Out      io.Writer
	Limit    int
	HasColor bool

	predicates []string
}

func NewHandler(r storage.RelationReader, out io.Writer) *Handler {
	return &Handler{
		Reader: r,
		Out:    out,
		Limit:  DefaultLimit,
	}
}

func (h *Handler) Run(ctx context.Context) error {

	preds, err := h.Reader.Predicates(ctx, "")
	if err != nil {
		return err
	}
	h.predicates = preds

	fmt.Fprintf(h.Out, "🔑 %d predicates, * matches anything, 🔧 quit\n", len(preds))

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("binrel query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.HasColor = !h.HasColor
					fmt.Fprintf(h.Out, "Color set to %t\n", h.HasColor)
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)
		if err := h.Query(ctx, in); err != nil {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
		}
	}
}

// Query prints the relations whose predicate matches in.
func (h *Handler) Query(ctx context.Context, in string) error {
	pattern, err := Pattern(in)
	if err != nil {
		return err
	}

	found, err := h.Reader.FindByPredicate(ctx, pattern, h.Limit)
	if err != nil {
		return err
	}

	for _, r := range found {
		line := r.Line
		if h.HasColor {
			color := render.Green256
			if r.Negated {
				color = render.Red
			}
			line = color + line + render.Off
		}
		if _, err := fmt.Fprintf(h.Out, "📖 %d ✍  %d %s\n", r.DocId, r.SentenceId, line); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(h.Out, "%d relations\n", len(found))
	return err
}

// Pattern converts a prompt input to a LIKE pattern. "*" matches any
// sequence; an input without wildcard matches as a prefix, so "stellen"
// finds "stellen_in_Frage".
func Pattern(in string) (string, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return "", ErrEmptyQuery
	}

	if strings.Contains(in, "*") {
		return strings.ReplaceAll(in, "*", "%"), nil
	}
	return in + "%", nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.TextBeforeCursor())
}

func (h *Handler) suggest(befCursor string) (s []prompt.Suggest) {
	if len(befCursor) < completionThreshold {
		return s
	}

	for _, p := range h.predicates {
		if strings.HasPrefix(p, befCursor) {
			s = append(s, prompt.Suggest{Text: p, Description: "🔖 " + head(p)})
		}
	}
	return s
}

// head is the predicate up to the first attached modifier
func head(p string) string {
	if i := strings.IndexByte(p, '.'); i >= 0 {
		return p[:i]
	}
	return p
}

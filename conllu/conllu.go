// Package conllu reads dependency parser output in the CoNLL-U format.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/tree"
)

const numFields = 10

// column positions
const (
	colId = iota
	colForm
	colLemma
	colUpos
	colXpos
	colFeats
	colHead
	colDeprel
)

var ErrMalformedLine = errors.New("conllu: malformed line")

// Read returns the sentences of r. Sentences are numbered from 0 in file
// order, the numbering used by the entity files. Comments, multiword ranges
// and empty nodes are skipped; the lowercase root relation is relabelled
// ROOT.
func Read(r io.Reader) ([]sent.Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sentences []sent.Sentence
	var tokens []sent.Token
	lineNo := 0

	flush := func() {
		if len(tokens) == 0 {
			return
		}
		id := len(sentences)
		for i := range tokens {
			tokens[i].SentenceId = id
		}
		sentences = append(sentences, sent.Sentence{Id: id, Tokens: tokens})
		tokens = nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < numFields {
			return nil, fmt.Errorf("%w %d: expected %d fields, got %d", ErrMalformedLine, lineNo, numFields, len(fields))
		}

		// multiword token ranges and empty nodes
		if strings.ContainsAny(fields[colId], "-.") {
			continue
		}

		tok, err := token(fields, len(tokens))
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrMalformedLine, lineNo, err)
		}
		tokens = append(tokens, tok)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	flush()

	return sentences, nil
}

func token(fields []string, index int) (sent.Token, error) {
	id, err := strconv.Atoi(fields[colId])
	if err != nil {
		return sent.Token{}, fmt.Errorf("id %q: %w", fields[colId], err)
	}
	head, err := strconv.Atoi(fields[colHead])
	if err != nil {
		return sent.Token{}, fmt.Errorf("head %q: %w", fields[colHead], err)
	}

	rel := fields[colDeprel]
	if rel == "root" {
		rel = tree.RootRel
	}

	return sent.Token{
		Id:    id,
		Head:  head,
		Text:  field(fields[colForm]),
		Lemma: field(fields[colLemma]),
		Pos:   field(fields[colUpos]),
		Tag:   field(fields[colXpos]),
		Dep:   rel,
		Index: index,
	}, nil
}

// field maps the CoNLL-U underscore placeholder to the empty string.
func field(s string) string {
	if s == "_" {
		return ""
	}
	return s
}

package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/binrel/storage"
	"github.com/revelaction/binrel/typing"
)

// LexiconStore serves hypernym paths from a tab separated file:
//
//	Politiker	[Synset(Politiker), Synset(Mensch), ...]
type LexiconStore struct {
	entries map[string]string
}

var _ storage.LexiconReader = (*LexiconStore)(nil)
var _ typing.Hierarchy = (*LexiconStore)(nil)

func NewLexiconStore(path string) (*LexiconStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	entries, err := ReadLexicon(f)
	if err != nil {
		return nil, err
	}
	return &LexiconStore{entries: entries}, nil
}

func (s *LexiconStore) HypernymPaths(lemma string) (string, error) {
	p, ok := s.entries[lemma]
	if !ok {
		return "", typing.ErrNotFound
	}
	return p, nil
}

// Entries returns the loaded lemmas and paths
func (s *LexiconStore) Entries() map[string]string {
	return s.entries
}

// ReadLexicon parses "<lemma>\t<paths>" lines. Empty lines and lines
// starting with # are ignored.
func ReadLexicon(r io.Reader) (map[string]string, error) {
	entries := map[string]string{}
	err := scanTSV(r, func(lineNo int, fields []string) error {
		entries[fields[0]] = fields[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadVerbMap parses "<verb>\t<preposition> <noun>" lines, one collocation
// per line.
func ReadVerbMap(r io.Reader) (map[string][]string, error) {
	m := map[string][]string{}
	err := scanTSV(r, func(lineNo int, fields []string) error {
		col := strings.Join(strings.Fields(fields[1]), " ")
		if len(strings.Fields(col)) != 2 {
			return fmt.Errorf("line %d: collocation %q is not <preposition> <noun>", lineNo, fields[1])
		}
		m[fields[0]] = append(m[fields[0]], col)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReadVerbMapFile reads a verb map file
func ReadVerbMapFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()
	return ReadVerbMap(f)
}

func scanTSV(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 || strings.TrimSpace(fields[0]) == "" {
			return fmt.Errorf("line %d: expected two tab separated fields", lineNo)
		}
		fields[0] = strings.TrimSpace(fields[0])
		fields[1] = strings.TrimSpace(fields[1])

		if err := fn(lineNo, fields); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}

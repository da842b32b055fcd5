package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/revelaction/binrel/conllu"
	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/storage"
)

const (
	docExt      = ".json"
	conlluExt   = ".conllu"
	entitiesExt = ".entities.json"
)

var ErrReadOnly = errors.New("read-only storage")

// DocStore reads documents from a directory. A document is either a JSON
// sent.Doc or a CoNLL-U parse with the entities of its sentences in a
// sibling <name>.entities.json file.
type DocStore struct {
	docDir string

	docs []sent.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(files))

	idx := 0
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || strings.HasSuffix(name, entitiesExt) {
			continue
		}

		ext := filepath.Ext(name)
		if ext == docExt || ext == conlluExt {
			docs = append(docs, sent.Doc{
				Id:    idx,
				Title: name,
			})
			idx++
		}
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
	}, nil
}

func (h *DocStore) List() ([]sent.Doc, error) {
	return h.docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	meta := h.docs[id]
	path := filepath.Join(h.docDir, meta.Title)

	var doc sent.Doc
	var err error
	if filepath.Ext(meta.Title) == conlluExt {
		doc, err = ReadConllu(path)
	} else {
		doc, err = ReadDoc(path)
	}
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Id = meta.Id
	if doc.Title == "" {
		doc.Title = meta.Title
	}
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = meta.Id
	}
	return doc, nil
}

func (h *DocStore) Write(doc sent.Doc) error {
	return ErrReadOnly
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// ReadConllu reads a CoNLL-U file and, when present, the entities file next
// to it.
func ReadConllu(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sentences, err := conllu.Read(f)
	if err != nil {
		return sent.Doc{}, err
	}

	stem := strings.TrimSuffix(path, conlluExt)
	entities, err := ReadEntities(stem + entitiesExt)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return sent.Doc{}, err
	}

	for i := range sentences {
		key := strconv.Itoa(sentences[i].Id)
		sentences[i].Entities = entities[key]
	}

	return sent.Doc{
		Title:     filepath.Base(path),
		Sentences: sentences,
	}, nil
}

// ReadEntities reads an entities file keyed by sentence number. Each
// sentence maps an entity key to either a full mention object or the
// compact [name, type] pair keyed by start token.
func ReadEntities(path string) (map[string]map[string]sent.Mention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	out := make(map[string]map[string]sent.Mention, len(raw))
	for sentKey, ents := range raw {
		mentions := make(map[string]sent.Mention, len(ents))
		for key, msg := range ents {
			m, err := decodeMention(key, msg)
			if err != nil {
				return nil, fmt.Errorf("sentence %s entity %s: %w", sentKey, key, err)
			}
			mentions[key] = m
		}
		out[sentKey] = mentions
	}
	return out, nil
}

func decodeMention(key string, msg json.RawMessage) (sent.Mention, error) {
	trimmed := strings.TrimSpace(string(msg))
	if !strings.HasPrefix(trimmed, "[") {
		var m sent.Mention
		if err := json.Unmarshal(msg, &m); err != nil {
			return sent.Mention{}, fmt.Errorf("JSON decoding error: %w", err)
		}
		return m, nil
	}

	var pair []string
	if err := json.Unmarshal(msg, &pair); err != nil {
		return sent.Mention{}, fmt.Errorf("JSON decoding error: %w", err)
	}
	if len(pair) != 2 {
		return sent.Mention{}, fmt.Errorf("expected [name, type], got %d elements", len(pair))
	}

	start, err := strconv.Atoi(key)
	if err != nil {
		return sent.Mention{}, fmt.Errorf("start token %q: %w", key, err)
	}

	// the compact form carries no identifier: the name stands for it
	return sent.Mention{Start: start, Name: pair[0], URL: pair[0], Type: pair[1]}, nil
}

package render

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/revelaction/binrel/extract"
)

// Date is the constant date of every JSON record.
const Date = "Jan 1, 1980 12:00:00 AM"

// SentenceRecord is one line of the JSON output.
type SentenceRecord struct {
	S         string           `json:"s"`
	Date      string           `json:"date"`
	ArticleId string           `json:"articleId"`
	LineId    string           `json:"lineId"`
	Rels      []RelationRecord `json:"rels"`
}

type RelationRecord struct {
	R string `json:"r"`
}

// JSONRenderer writes one JSON object per sentence and line.
type JSONRenderer struct {
	W io.Writer

	// ArticleId identifies the input document in every record
	ArticleId string
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer, articleId string) *JSONRenderer {
	return &JSONRenderer{W: w, ArticleId: articleId}
}

// Record builds the JSON record of a sentence.
func (r *JSONRenderer) Record(res extract.Result) SentenceRecord {
	rec := SentenceRecord{
		S:         res.Text,
		Date:      Date,
		ArticleId: r.ArticleId,
		LineId:    strconv.Itoa(res.Sentence.Id),
		Rels:      make([]RelationRecord, 0, len(res.Relations)),
	}
	for _, rel := range res.Relations {
		rec.Rels = append(rec.Rels, RelationRecord{R: rel.Record()})
	}
	return rec
}

func (r *JSONRenderer) Render(res extract.Result) error {
	enc := json.NewEncoder(r.W)
	enc.SetEscapeHTML(false)
	return enc.Encode(r.Record(res))
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
var _ Renderer = (*TextRenderer)(nil)

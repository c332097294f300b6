package convert

import (
	"bufio"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	"github.com/zionsongs/songkit/song"
)

// Doc is the JSON lines form of a record, one document per line.
type Doc struct {
	Number     string            `json:"number"`
	Resolved   bool              `json:"resolved"`
	Titles     map[string]string `json:"titles,omitempty"`
	Pallavi    []string          `json:"pallavi,omitempty"`
	Anupallavi []string          `json:"anupallavi,omitempty"`
	Choruses   [][]string        `json:"choruses,omitempty"`
	Verses     [][]string        `json:"verses,omitempty"`
	Order      []string          `json:"order,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// NewDoc converts a record. A title without language is stored under "und".
// If no explicit order exists, the synthesized order is used.
func NewDoc(r *song.Record) Doc {
	doc := Doc{
		Number:     r.Number.String(),
		Resolved:   r.Number.IsKnown(),
		Pallavi:    r.Refrain.Pallavi,
		Anupallavi: r.Refrain.Anupallavi,
		Choruses:   r.Refrain.Extra,
		Order:      r.Order,
	}
	if len(doc.Order) == 0 {
		doc.Order = song.VerseOrder(r)
	}
	if len(r.Titles) > 0 {
		doc.Titles = make(map[string]string)
		for _, t := range r.Titles {
			key := string(t.Lang)
			if key == "" {
				key = "und"
			}
			doc.Titles[key] = t.Text
		}
	}
	for _, v := range r.Verses {
		doc.Verses = append(doc.Verses, []string(v))
	}
	if len(r.Metadata) > 0 {
		doc.Metadata = make(map[string]string)
		for _, f := range r.Metadata {
			doc.Metadata[f.Key] = f.Value
		}
	}
	return doc
}

// JSONWriter writes one document per line.
type JSONWriter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter returns a writer, call Flush when done.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{bw: bw, enc: json.NewEncoder(bw)}
}

// Write encodes a single record.
func (w *JSONWriter) Write(r *song.Record) error {
	if err := w.enc.Encode(NewDoc(r)); err != nil {
		return fmt.Errorf("encode %s: %w", r.Number, err)
	}
	return nil
}

// Flush flushes buffered output.
func (w *JSONWriter) Flush() error {
	return w.bw.Flush()
}

package source

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/viant/pathknn/index"
)

const (
	// ReferenceField holds the slide embedding of a reference record.
	ReferenceField = "embedding"

	// QueryField holds the report embedding of a query record.
	QueryField = "embeddings"
)

// DecodeRecords decodes a JSON array of reference records. The raw value of
// field becomes the record embedding and the element position its label.
// Elements lacking field yield a nil embedding, left for index.Build to
// reject.
func DecodeRecords(data []byte, field string) ([]index.Record, error) {
	var records []index.Record
	err := forEach(data, field, func(position int, embedding any) {
		records = append(records, index.Record{Label: index.Label(position), Embedding: embedding})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeQueries decodes a JSON array of query records into raw embeddings,
// one per element, in order.
func DecodeQueries(data []byte, field string) ([]any, error) {
	var queries []any
	err := forEach(data, field, func(_ int, embedding any) {
		queries = append(queries, embedding)
	})
	if err != nil {
		return nil, err
	}
	return queries, nil
}

func forEach(data []byte, field string, fn func(position int, embedding any)) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("source: invalid JSON payload (%d bytes)", len(data))
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return ErrNotArray
	}
	position := 0
	root.ForEach(func(_, element gjson.Result) bool {
		var embedding any
		if element.IsObject() {
			if value := element.Get(gjson.Escape(field)); value.Exists() {
				embedding = value.Value()
			}
		}
		fn(position, embedding)
		position++
		return true
	})
	return nil
}

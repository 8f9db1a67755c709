package source

import (
	"context"
	"fmt"

	"github.com/viant/pathknn/index"
)

// Dataset locates one JSON record array.
type Dataset struct {
	// Location is an HTTP(S) URL, file:// URL or local path.
	Location string `yaml:"location"`
	// Member names the JSON file inside a zip archive; it is ignored for
	// payloads that are not zip archives.
	Member string `yaml:"member"`
	// Field is the record attribute holding the embedding.
	Field string `yaml:"field"`
}

// Load fetches the dataset payload and unpacks it when it is a zip archive.
func (f *Fetcher) Load(ctx context.Context, dataset Dataset) ([]byte, error) {
	data, err := f.Fetch(ctx, dataset.Location)
	if err != nil {
		return nil, err
	}
	if !IsZip(data) {
		return data, nil
	}
	content, err := ReadMember(data, dataset.Member)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	f.logger().Info("extracted archive member", "location", dataset.Location, "member", dataset.Member, "bytes", len(content))
	return content, nil
}

// References loads and decodes a reference dataset; Field defaults to
// ReferenceField.
func (f *Fetcher) References(ctx context.Context, dataset Dataset) ([]index.Record, error) {
	data, err := f.Load(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if dataset.Field == "" {
		dataset.Field = ReferenceField
	}
	return DecodeRecords(data, dataset.Field)
}

// Queries loads and decodes a query dataset; Field defaults to QueryField.
func (f *Fetcher) Queries(ctx context.Context, dataset Dataset) ([]any, error) {
	data, err := f.Load(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if dataset.Field == "" {
		dataset.Field = QueryField
	}
	return DecodeQueries(data, dataset.Field)
}

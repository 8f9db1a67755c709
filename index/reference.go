package index

import (
	"errors"
	"log/slog"

	"github.com/viant/pathknn/vector"
)

// Label identifies the class a reference example votes for. Here it is the
// position of the slide embedding within its source.
type Label int

// Record is a raw reference entry as decoded by an upstream loader. Embedding
// is validated by Build; it is typically a []any produced by a JSON decoder.
type Record struct {
	Label     Label
	Embedding any
}

// Example is a validated reference vector. Position is its insertion order
// in the Reference and is used to break distance ties.
type Example struct {
	Position int
	Label    Label
	Vector   vector.Vector
}

// Reference is an immutable set of labeled examples sharing one
// dimensionality. It is safe for concurrent reads once Build returns.
type Reference struct {
	examples []Example
	dim      int
	dropped  []*vector.InvalidRecordError
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger *slog.Logger
	dim    int
}

// WithLogger sets the logger used to report dropped records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDim requires every example to have dim components instead of taking
// the dimension from the first valid record.
func WithDim(dim int) Option {
	return func(o *options) { o.dim = dim }
}

// Build validates records and collects the valid ones, in order, into a
// Reference. Invalid records are logged, kept in Dropped and skipped. If no
// valid record remains Build returns an *EmptyIndexError.
func Build(records []Record, opts ...Option) (*Reference, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	validator := vector.NewValidator(o.dim)
	ref := &Reference{examples: make([]Example, 0, len(records))}
	for i, record := range records {
		vec, err := validator.Validate(i, record.Embedding)
		if err != nil {
			var invalid *vector.InvalidRecordError
			if !errors.As(err, &invalid) {
				return nil, err
			}
			ref.dropped = append(ref.dropped, invalid)
			o.logger.Warn("dropping reference record", "position", i, "label", int(record.Label), "error", err)
			continue
		}
		ref.examples = append(ref.examples, Example{
			Position: len(ref.examples),
			Label:    record.Label,
			Vector:   vec,
		})
	}
	if len(ref.examples) == 0 {
		return nil, &EmptyIndexError{Records: len(records), Dropped: len(ref.dropped)}
	}
	ref.dim = validator.Dim()
	o.logger.Debug("reference index built", "size", len(ref.examples), "dim", ref.dim, "dropped", len(ref.dropped))
	return ref, nil
}

// Size returns the number of examples.
func (r *Reference) Size() int {
	if r == nil {
		return 0
	}
	return len(r.examples)
}

// Dim returns the dimensionality shared by all examples.
func (r *Reference) Dim() int {
	if r == nil {
		return 0
	}
	return r.dim
}

// Example returns the example at insertion position i.
func (r *Reference) Example(i int) *Example { return &r.examples[i] }

// Examples returns the examples in insertion order. The slice must not be
// modified.
func (r *Reference) Examples() []Example {
	if r == nil {
		return nil
	}
	return r.examples
}

// Dropped returns the records rejected during Build, in source order.
func (r *Reference) Dropped() []*vector.InvalidRecordError {
	if r == nil {
		return nil
	}
	return r.dropped
}

package knn

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/index/bruteforce"
	"github.com/viant/pathknn/vector"
)

// DefaultK is the neighbor count used when none is configured.
const DefaultK = 5

// Result is the outcome of one query. Exactly one of Confidences and Err is
// set.
type Result struct {
	Position    int
	Confidences Confidences
	Neighbors   index.Neighbors
	Err         error
}

// OK reports whether the query was classified.
func (r Result) OK() bool { return r.Err == nil }

// Classifier classifies query vectors against one immutable reference index.
// It is safe for concurrent use.
type Classifier struct {
	ref      *index.Reference
	searcher index.Searcher
	k        int
	workers  int
	logger   *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithK sets the neighbor count.
func WithK(k int) Option {
	return func(c *Classifier) error {
		if k <= 0 {
			return index.ErrInvalidK
		}
		c.k = k
		return nil
	}
}

// WithWorkers bounds the number of queries searched concurrently. Values
// below one select runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(c *Classifier) error {
		if workers < 1 {
			workers = runtime.GOMAXPROCS(0)
		}
		c.workers = workers
		return nil
	}
}

// WithMetric selects the brute-force searcher for metric.
func WithMetric(metric vector.Metric) Option {
	return func(c *Classifier) error {
		ranker, err := bruteforce.New(metric)
		if err != nil {
			return err
		}
		c.searcher = ranker
		return nil
	}
}

// WithSearcher replaces the default brute-force searcher.
func WithSearcher(searcher index.Searcher) Option {
	return func(c *Classifier) error {
		c.searcher = searcher
		return nil
	}
}

// WithLogger sets the logger used for per-query warnings and batch summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		c.logger = logger
		return nil
	}
}

// NewClassifier creates a Classifier over ref. An empty reference is
// rejected up front so that no query runs against it.
func NewClassifier(ref *index.Reference, opts ...Option) (*Classifier, error) {
	if ref.Size() == 0 {
		return nil, &index.EmptyIndexError{Dropped: len(ref.Dropped())}
	}
	c := &Classifier{
		ref:     ref,
		k:       DefaultK,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.searcher == nil {
		c.searcher = &bruteforce.Ranker{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// K returns the configured neighbor count.
func (c *Classifier) K() int { return c.k }

// Reference returns the index queries are searched against.
func (c *Classifier) Reference() *index.Reference { return c.ref }

// Classify validates and classifies every raw query embedding. The returned
// slice always has one Result per query, at the query's position. Per-query
// failures are reported in Result.Err as *ClassificationError and do not
// stop the batch; the returned error is non-nil only when ctx ends before
// the batch completes, in which case unprocessed queries carry ctx.Err().
func (c *Classifier) Classify(ctx context.Context, queries []any) ([]Result, error) {
	started := time.Now()
	results := make([]Result, len(queries))
	var group errgroup.Group
	group.SetLimit(c.workers)
	for i, raw := range queries {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(queries); j++ {
				results[j] = Result{Position: j, Err: &ClassificationError{Position: j, Err: err}}
			}
			break
		}
		group.Go(func() error {
			results[i] = c.classify(ctx, i, raw)
			return nil
		})
	}
	_ = group.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	c.logger.Info("classified queries",
		"queries", len(queries), "failed", failed, "k", c.k,
		"index_size", c.ref.Size(), "elapsed", time.Since(started))
	if err := ctx.Err(); err != nil {
		for i := range results {
			if errors.Is(results[i].Err, err) {
				return results, err
			}
		}
	}
	return results, nil
}

// ClassifyVectors is Classify for already decoded vectors.
func (c *Classifier) ClassifyVectors(ctx context.Context, queries []vector.Vector) ([]Result, error) {
	raw := make([]any, len(queries))
	for i, q := range queries {
		raw[i] = q
	}
	return c.Classify(ctx, raw)
}

func (c *Classifier) classify(ctx context.Context, position int, raw any) Result {
	result := Result{Position: position}
	fail := func(err error) Result {
		result.Err = &ClassificationError{Position: position, Err: err}
		c.logger.Warn("query not classified", "position", position, "error", err)
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = &ClassificationError{Position: position, Err: err}
		return result
	}
	query, err := vector.NewValidator(0).Validate(position, raw)
	if err != nil {
		return fail(err)
	}
	neighbors, err := c.searcher.Neighbors(query, c.ref, c.k)
	if err != nil {
		return fail(err)
	}
	confidences, err := Aggregate(neighbors)
	if err != nil {
		return fail(err)
	}
	result.Neighbors = neighbors
	result.Confidences = confidences
	return result
}

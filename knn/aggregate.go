package knn

import (
	"errors"
	"sort"

	"github.com/viant/pathknn/index"
)

// ErrEmptyNeighborhood is returned when there are no neighbors to aggregate.
// A built reference index is never empty, so seeing it signals a bug.
var ErrEmptyNeighborhood = errors.New("knn: empty neighborhood")

// Confidences maps each label present in a neighborhood to its share of the
// neighbors. Labels absent from the neighborhood are omitted.
type Confidences map[index.Label]float64

// LabelConfidence is one entry of a Confidences distribution.
type LabelConfidence struct {
	Label      index.Label `json:"label"`
	Confidence float64     `json:"confidence"`
}

// Aggregate computes count(label)/len(neighbors) for every label among
// neighbors.
func Aggregate(neighbors index.Neighbors) (Confidences, error) {
	if len(neighbors) == 0 {
		return nil, ErrEmptyNeighborhood
	}
	counts := make(map[index.Label]int, len(neighbors))
	for _, n := range neighbors {
		counts[n.Example.Label]++
	}
	total := float64(len(neighbors))
	out := make(Confidences, len(counts))
	for label, count := range counts {
		out[label] = float64(count) / total
	}
	return out, nil
}

// Labels returns the distribution ordered by descending confidence, then
// ascending label.
func (c Confidences) Labels() []LabelConfidence {
	out := make([]LabelConfidence, 0, len(c))
	for label, confidence := range c {
		out = append(out, LabelConfidence{Label: label, Confidence: confidence})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Top returns the most supported label; ties go to the smallest label.
func (c Confidences) Top() (LabelConfidence, bool) {
	labels := c.Labels()
	if len(labels) == 0 {
		return LabelConfidence{}, false
	}
	return labels[0], true
}

package index

// Neighbor pairs a reference example with its distance to a query.
type Neighbor struct {
	Example  *Example
	Distance float64
}

// Neighbors is the ordered result of a kNN search.
type Neighbors []Neighbor

// Labels returns the labels of the neighbors in rank order.
func (n Neighbors) Labels() []Label {
	out := make([]Label, len(n))
	for i := range n {
		out[i] = n[i].Example.Label
	}
	return out
}

// Distances returns the neighbor distances in rank order.
func (n Neighbors) Distances() []float64 {
	out := make([]float64, len(n))
	for i := range n {
		out[i] = n[i].Distance
	}
	return out
}

package bruteforce

// candidate is a scored example position.
type candidate struct {
	position int
	distance float64
}

// before reports whether c ranks ahead of o: smaller distance first, then
// earlier insertion.
func (c candidate) before(o candidate) bool {
	if c.distance != o.distance {
		return c.distance < o.distance
	}
	return c.position < o.position
}

// candidates implements heap.Interface with the worst-ranked candidate on top.
type candidates []candidate

func (h candidates) Len() int           { return len(h) }
func (h candidates) Less(i, j int) bool { return h[j].before(h[i]) }
func (h candidates) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidates) Push(x interface{}) {
	*h = append(*h, x.(candidate))
}

func (h *candidates) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

package angles

// History is a bounded FIFO of recent angle samples. Once the capacity is
// reached, pushing a new sample evicts the oldest. It is a smoothing window,
// not an ordered log: the only read operation is the circular mean of the
// current contents.
type History struct {
	capacity int
	samples  []float64
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// Push appends a sample, evicting the oldest if the history is full.
func (h *History) Push(theta float64) {
	if len(h.samples) == h.capacity {
		h.samples = h.samples[:copy(h.samples, h.samples[1:])]
	}
	h.samples = append(h.samples, theta)
}

// Len returns the number of samples currently held.
func (h *History) Len() int {
	return len(h.samples)
}

// Empty reports whether no samples have been received yet.
func (h *History) Empty() bool {
	return len(h.samples) == 0
}

// Mean returns the circular mean of the held samples in [0, 2π).
// The second return is false when the history is empty.
func (h *History) Mean() (float64, bool) {
	if len(h.samples) == 0 {
		return 0, false
	}
	return Mean(h.samples), true
}

// Reset discards all samples.
func (h *History) Reset() {
	h.samples = h.samples[:0]
}

package monitor

// DefaultHistoryLimit is the number of entries retained per bounded series
// (logs, loss, learning rate, timestamps).
const DefaultHistoryLimit = 100

// ring is a fixed-capacity circular buffer. Once full, each push evicts
// the oldest element (FIFO). The zero value is not usable; construct with
// newRing.
type ring[T any] struct {
	data  []T
	head  int
	count int
	size  int
}

// newRing creates a ring buffer with the specified capacity.
func newRing[T any](size int) *ring[T] {
	if size <= 0 {
		size = DefaultHistoryLimit
	}
	return &ring[T]{
		data: make([]T, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ring[T]) push(v T) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// last returns the most recent n values in chronological order (oldest first).
// Returns fewer values if not enough are stored.
func (r *ring[T]) last(n int) []T {
	if n <= 0 || r.count == 0 {
		return nil
	}

	if n > r.count {
		n = r.count
	}

	result := make([]T, n)

	// head points to the next write position, so the most recent value is
	// at head-1. We want n values ending there.
	start := (r.head - n + r.size) % r.size

	for i := 0; i < n; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}

// all returns every stored value in chronological order.
func (r *ring[T]) all() []T {
	return r.last(r.count)
}

// clear discards all stored values.
func (r *ring[T]) clear() {
	var zero T
	for i := range r.data {
		r.data[i] = zero
	}
	r.head = 0
	r.count = 0
}

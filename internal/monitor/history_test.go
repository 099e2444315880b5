package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRing(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"default size", 0, DefaultHistoryLimit},
		{"negative size", -1, DefaultHistoryLimit},
		{"custom size", 50, 50},
		{"small size", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRing[float64](tt.size)
			assert.NotNil(t, r)
			assert.Equal(t, tt.expected, r.size)
			assert.Len(t, r.data, tt.expected)
		})
	}
}

func TestRingOverflow(t *testing.T) {
	r := newRing[float64](5)

	// Push more than capacity
	for i := 0; i < 8; i++ {
		r.push(float64(i))
	}

	// Should only keep the last 5 values: 3, 4, 5, 6, 7
	values := r.all()
	require.Len(t, values, 5)
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, values)
}

func TestRingLast(t *testing.T) {
	r := newRing[int](10)
	for i := 1; i <= 6; i++ {
		r.push(i)
	}

	tests := []struct {
		name     string
		n        int
		expected []int
	}{
		{"subset", 3, []int{4, 5, 6}},
		{"exact count", 6, []int{1, 2, 3, 4, 5, 6}},
		{"more than stored", 10, []int{1, 2, 3, 4, 5, 6}},
		{"zero", 0, nil},
		{"negative", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.last(tt.n))
		})
	}
}

func TestRingLastEmpty(t *testing.T) {
	r := newRing[string](4)
	assert.Nil(t, r.last(3))
	assert.Nil(t, r.all())
}

func TestRingClear(t *testing.T) {
	r := newRing[int](4)
	for i := 0; i < 6; i++ {
		r.push(i)
	}
	require.Len(t, r.all(), 4)

	r.clear()
	assert.Nil(t, r.all())
	assert.Equal(t, 0, r.count)

	// Reusable after clear
	r.push(42)
	assert.Equal(t, []int{42}, r.all())
}

func TestRingChronologicalOrder(t *testing.T) {
	r := newRing[int](100)

	// Wrap the buffer twice to exercise the modular arithmetic
	for i := 0; i < 250; i++ {
		r.push(i)
	}

	values := r.all()
	require.Len(t, values, 100)
	assert.Equal(t, 150, values[0], "oldest retained value")
	assert.Equal(t, 249, values[99], "newest value")
	for i := 1; i < len(values); i++ {
		assert.Equal(t, values[i-1]+1, values[i], "values should be in arrival order")
	}
}

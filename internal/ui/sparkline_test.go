package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force a fixed color profile so rendered output is deterministic
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantMin float64
		wantMax float64
	}{
		{name: "single value", data: []float64{2.0}, wantMin: 2.0, wantMax: 2.0},
		{name: "loss range", data: []float64{2.0, 0.1, 1.5}, wantMin: 0.1, wantMax: 2.0},
		{name: "negative values", data: []float64{-5, 3, 0}, wantMin: -5, wantMax: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minVal, maxVal := minMax(tt.data)
			assert.Equal(t, tt.wantMin, minVal)
			assert.Equal(t, tt.wantMax, maxVal)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name   string
		val    float64
		minVal float64
		maxVal float64
		want   float64
	}{
		{name: "middle value", val: 50, minVal: 0, maxVal: 100, want: 0.5},
		{name: "min value", val: 0, minVal: 0, maxVal: 100, want: 0},
		{name: "max value", val: 100, minVal: 0, maxVal: 100, want: 1},
		{name: "equal min max returns 0.5", val: 50, minVal: 50, maxVal: 50, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeValue(tt.val, tt.minVal, tt.maxVal)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name string
		val  int
		max  int
		want int
	}{
		{name: "within range", val: 5, max: 10, want: 5},
		{name: "at max", val: 10, max: 10, want: 10},
		{name: "over max", val: 15, max: 10, want: 10},
		{name: "negative clamped to zero", val: -5, max: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampInt(tt.val, tt.max))
		})
	}
}

func TestResampleData(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		targetSize int
		wantLen    int
		wantNil    bool
	}{
		{name: "empty data returns nil", data: []float64{}, targetSize: 10, wantNil: true},
		{name: "zero target returns nil", data: []float64{1, 2, 3}, targetSize: 0, wantNil: true},
		{name: "same size returns original", data: []float64{1, 2, 3}, targetSize: 3, wantLen: 3},
		{name: "single value fills target", data: []float64{42}, targetSize: 5, wantLen: 5},
		{name: "downsampling reduces size", data: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, targetSize: 5, wantLen: 5},
		{name: "upsampling increases size", data: []float64{0, 100}, targetSize: 5, wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resampleData(tt.data, tt.targetSize)
			if tt.wantNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Len(t, result, tt.wantLen)
			}
		})
	}
}

func TestResampleDataDownsamplingPreservesPeaks(t *testing.T) {
	// A loss spike in the middle must survive downsampling
	data := []float64{0.2, 0.2, 0.2, 1.8, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2}

	result := resampleData(data, 5)
	require.Len(t, result, 5)

	hasSpike := false
	for _, v := range result {
		if v == 1.8 {
			hasSpike = true
			break
		}
	}
	assert.True(t, hasSpike, "downsampling should preserve peak values")
}

func TestResampleDataUpsamplingInterpolates(t *testing.T) {
	result := resampleData([]float64{0, 100}, 5)
	require.Len(t, result, 5)

	assert.InDelta(t, 0, result[0], 0.1)
	assert.InDelta(t, 25, result[1], 0.1)
	assert.InDelta(t, 50, result[2], 0.1)
	assert.InDelta(t, 75, result[3], 0.1)
	assert.InDelta(t, 100, result[4], 0.1)
}

func TestRenderSparklineEmpty(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, ColorInfo))
	assert.Empty(t, RenderSparkline([]float64{1.0}, 0, ColorInfo))
}

func TestRenderSparklineWidth(t *testing.T) {
	result := RenderSparkline([]float64{1, 2, 3, 4, 5}, 8, ColorInfo)
	assert.Len(t, []rune(stripAnsi(result)), 8)
}

func TestRenderSparklineUsesFullRange(t *testing.T) {
	// A decaying loss curve between 0.1 and 2.0 must span all 8 levels,
	// not sit flat at the bottom of a 0-100 scale.
	result := RenderSparkline([]float64{2.0, 1.5, 1.0, 0.5, 0.1}, 5, ColorInfo)
	assert.Equal(t, "█▆▄▂▁", stripAnsi(result))
}

func TestTrendColor(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want lipgloss.Color
	}{
		{name: "falling loss is green", data: []float64{2.0, 1.5, 1.0, 0.5}, want: ColorSuccess},
		{name: "rising loss is amber", data: []float64{0.5, 1.0, 1.5, 2.0}, want: ColorWarning},
		{name: "single point is neutral", data: []float64{1.0}, want: ColorInfo},
		{name: "empty is neutral", data: nil, want: ColorInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendColor(tt.data))
		})
	}
}

func TestRenderTrendSparkline(t *testing.T) {
	result := RenderTrendSparkline([]float64{2.0, 1.0, 0.5}, 3)
	assert.NotEmpty(t, result)
	assert.Len(t, []rune(stripAnsi(result)), 3)
}

package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "latin terminators",
			text: "First sentence. Second one! Third?",
			want: []string{"First sentence", " Second one", " Third"},
		},
		{
			name: "arabic question mark",
			text: "ما هذا؟ هذا كتاب.",
			want: []string{"ما هذا", " هذا كتاب"},
		},
		{
			name: "urdu full stop",
			text: "جملة أولى۔ جملة ثانية۔",
			want: []string{"جملة أولى", " جملة ثانية"},
		},
		{
			name: "no terminator",
			text: "نص بلا نهاية",
			want: []string{"نص بلا نهاية"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestChunkSentencesPacksWholeSentences(t *testing.T) {
	a := strings.Repeat("a", 30)
	b := strings.Repeat("b", 15)
	c := strings.Repeat("c", 40)
	text := a + ". " + b + ". " + c + "."

	chunks := ChunkSentences(text, 50)

	// a and b fit together under the limit, c overflows into its own
	// chunk.
	require.Len(t, chunks, 2)
	assert.Equal(t, a+". "+b+".", chunks[0])
	assert.Equal(t, c+".", chunks[1])
}

func TestChunkSentencesKeepsLongSentenceWhole(t *testing.T) {
	long := strings.Repeat("x", 120)

	chunks := ChunkSentences(long+".", 50)

	require.Len(t, chunks, 1)
	assert.Equal(t, long+".", chunks[0])
}

func TestChunkSentencesDropsShortChunks(t *testing.T) {
	assert.Empty(t, ChunkSentences("قصير. نص.", 500))
	assert.Empty(t, ChunkSentences("", 500))
}

func TestChunkSentencesDefaultSize(t *testing.T) {
	text := "هذه جملة عربية طويلة بما يكفي لتجاوز الحد الأدنى للمقاطع."

	chunks := ChunkSentences(text, 0)

	require.Len(t, chunks, 1)
	assert.Equal(t, "هذه جملة عربية طويلة بما يكفي لتجاوز الحد الأدنى للمقاطع.", chunks[0])
}

func TestChunkWords(t *testing.T) {
	chunks := ChunkWords("aa bb cc dd", 6)

	require.Len(t, chunks, 2)
	assert.Equal(t, "aa bb", chunks[0])
	assert.Equal(t, "cc dd", chunks[1])
}

func TestChunkWordsEmpty(t *testing.T) {
	assert.Empty(t, ChunkWords("", 100))
	assert.Empty(t, ChunkWords("   \n\t ", 100))
}

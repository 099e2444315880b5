package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/ollama"
)

func TestWriteJSONLKeepsArabicReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.jsonl")
	records := []ConversationRecord{
		{Messages: []ollama.Message{
			{Role: "user", Content: "ما هو الأدب؟"},
			{Role: "assistant", Content: "الأدب هو فن الكلمة <المكتوبة>"},
		}},
	}

	require.NoError(t, WriteJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Arabic must land in the file as UTF-8, not \u escapes, and HTML
	// escaping must be off.
	assert.Contains(t, content, "ما هو الأدب؟")
	assert.Contains(t, content, "<المكتوبة>")
	assert.NotContains(t, content, `\u0`)
	assert.NotContains(t, content, `<`)
	assert.True(t, strings.HasSuffix(content, "\n"))
}

func TestWriteJSONLOneRecordPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.jsonl")
	records := []CompletionRecord{
		{Prompt: "الجملة الأولى.", Completion: " الجملة الثانية."},
		{Prompt: "الجملة الثانية.", Completion: " الجملة الثالثة."},
		{Prompt: "الجملة الثالثة.", Completion: " الجملة الرابعة."},
	}

	require.NoError(t, WriteJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestReadRecordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	records := []Record{
		{Messages: []ollama.Message{{Role: "user", Content: "سؤال"}}},
		{Instruction: "لخص هذا النص:", Input: "نص", Output: "ملخص"},
		{Prompt: "بداية.", Completion: " نهاية."},
	}

	require.NoError(t, WriteJSONL(path, records))

	got, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "conversation", got[0].Kind())
	assert.Equal(t, "instruction", got[1].Kind())
	assert.Equal(t, "completion", got[2].Kind())
	assert.Equal(t, records, got)
}

func TestReadRecordsSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.jsonl")
	content := `{"prompt":"أ.","completion":" ب."}` + "\n\n" +
		`{"prompt":"ج.","completion":" د."}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := ReadRecords(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.jsonl"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDataset))
	assert.Contains(t, err.Error(), "Training file not found")
}

func TestReadRecordsReportsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jsonl")
	content := `{"prompt":"سليم.","completion":" تماماً."}` + "\n" +
		`{"prompt": broken` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadRecords(path)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDataset))
	assert.Contains(t, err.Error(), "Invalid JSON on line 2")
}

func TestRecordKind(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "conversation",
			record: Record{Messages: []ollama.Message{{Role: "user", Content: "س"}}},
			want:   "conversation",
		},
		{
			name:   "instruction",
			record: Record{Instruction: "اشرح", Output: "شرح"},
			want:   "instruction",
		},
		{
			name:   "completion",
			record: Record{Prompt: "أكمل", Completion: "تم"},
			want:   "completion",
		},
		{
			name:   "unknown",
			record: Record{},
			want:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Kind())
		})
	}
}

func TestRecordRender(t *testing.T) {
	conversation := Record{Messages: []ollama.Message{
		{Role: "system", Content: "تعليمات النظام"},
		{Role: "user", Content: "ما هذا؟"},
		{Role: "assistant", Content: "هذا كتاب"},
	}}
	rendered := conversation.Render()
	assert.Contains(t, rendered, "المستخدم: ما هذا؟")
	assert.Contains(t, rendered, "المساعد: هذا كتاب")
	assert.NotContains(t, rendered, "تعليمات النظام")

	instruction := Record{Instruction: "لخص:", Input: "النص", Output: "الملخص"}
	rendered = instruction.Render()
	assert.Contains(t, rendered, "التعليمات: لخص:")
	assert.Contains(t, rendered, "المدخل: النص")
	assert.Contains(t, rendered, "الإخراج: الملخص")

	completion := Record{Prompt: "البداية.", Completion: " النهاية."}
	rendered = completion.Render()
	assert.Contains(t, rendered, "المطلوب: البداية.")
	assert.Contains(t, rendered, "الإجابة:  النهاية.")
}

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/ollama"
)

// Instruction chunks stay shorter than conversation chunks so the
// instruction plus input plus output fits a small context window.
const instructionChunkSize = 300

// Completion sentences shorter than this are noise, not training pairs.
const minSentenceRunes = 10

// Minimum chunk lengths per format, after trimming.
const (
	minConversationRunes = 50
	minInstructionRunes  = 30
)

// instructionTemplates are the prompts paired with each text chunk in
// instruction format. Every chunk produces one record per template.
var instructionTemplates = []string{
	"لخص هذا النص:",
	"اشرح الفكرة الرئيسية في هذا النص:",
	"ما هي النقاط المهمة في هذا المقطع؟",
	"اكتب تعليقاً على هذا النص:",
	"ما هو موضوع هذا النص؟",
}

// Builder generates JSONL training files from corpus text files.
type Builder struct {
	// ChunkSize is the maximum rune length of a conversation chunk.
	ChunkSize int

	log logger.Logger
}

// NewBuilder returns a Builder. chunkSize <= 0 uses DefaultChunkSize.
func NewBuilder(chunkSize int, log logger.Logger) *Builder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Builder{ChunkSize: chunkSize, log: log}
}

// Conversations builds chat-format training records from the given
// files and writes them to outPath. Returns the record count.
func (b *Builder) Conversations(files []string, outPath string) (int, error) {
	var records []ConversationRecord

	err := b.eachFile(files, func(name, content string) {
		for _, chunk := range ChunkSentences(content, b.ChunkSize) {
			if !ContainsArabic(chunk) || runeLen(chunk) <= minConversationRunes {
				continue
			}
			records = append(records, ConversationRecord{
				Messages: []ollama.Message{
					{
						Role:    "system",
						Content: "أنت مساعد ذكي متخصص في اللغة العربية والأدب العربي. لديك معرفة واسعة من الكتب العربية. المصدر: " + name,
					},
					{
						Role:    "user",
						Content: "اشرح لي هذا النص أو أجب عن أسئلة حوله: " + firstRunes(chunk, 100) + "...",
					},
					{
						Role:    "assistant",
						Content: chunk,
					},
				},
			})
		}
	})
	if err != nil {
		return 0, err
	}

	if err := WriteJSONL(outPath, records); err != nil {
		return 0, err
	}
	b.log.Info("wrote %d conversations to %s", len(records), outPath)
	return len(records), nil
}

// Instructions builds instruction-format training records, one per
// template per chunk, and writes them to outPath.
func (b *Builder) Instructions(files []string, outPath string) (int, error) {
	var records []InstructionRecord

	err := b.eachFile(files, func(name, content string) {
		for _, chunk := range ChunkSentences(content, instructionChunkSize) {
			if !ContainsArabic(chunk) || runeLen(chunk) <= minInstructionRunes {
				continue
			}
			for _, template := range instructionTemplates {
				records = append(records, InstructionRecord{
					Instruction: template,
					Input:       chunk,
					Output:      responseFor(template, chunk),
					Source:      name,
				})
			}
		}
	})
	if err != nil {
		return 0, err
	}

	if err := WriteJSONL(outPath, records); err != nil {
		return 0, err
	}
	b.log.Info("wrote %d instructions to %s", len(records), outPath)
	return len(records), nil
}

// Completions builds next-sentence training pairs and writes them to
// outPath. Consecutive sentences both longer than minSentenceRunes
// become one prompt/completion pair.
func (b *Builder) Completions(files []string, outPath string) (int, error) {
	var records []CompletionRecord

	err := b.eachFile(files, func(name, content string) {
		sentences := SplitSentences(content)
		for i := 0; i+1 < len(sentences); i++ {
			first := strings.TrimSpace(sentences[i])
			second := strings.TrimSpace(sentences[i+1])
			if utf8.RuneCountInString(first) <= minSentenceRunes ||
				utf8.RuneCountInString(second) <= minSentenceRunes {
				continue
			}
			records = append(records, CompletionRecord{
				Prompt:     first + ".",
				Completion: " " + second + ".",
			})
		}
	})
	if err != nil {
		return 0, err
	}

	if err := WriteJSONL(outPath, records); err != nil {
		return 0, err
	}
	b.log.Info("wrote %d completions to %s", len(records), outPath)
	return len(records), nil
}

// eachFile reads and normalizes every input file, then hands its content
// to fn along with the base name.
func (b *Builder) eachFile(files []string, fn func(name, content string)) error {
	if len(files) == 0 {
		return errors.New(errors.ErrDataset,
			"No input files to process",
			"Add .txt or .md files, or point the command at your corpus directory")
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrDataset,
				"Failed to read "+path,
				"Check the file exists and is readable")
		}
		fn(filepath.Base(path), NormalizeText(string(data)))
	}
	return nil
}

// responseFor produces the target output for a template and chunk. The
// outputs are extractive: the model learns to ground its answers in the
// given text.
func responseFor(template, text string) string {
	switch {
	case strings.Contains(template, "لخص"):
		return strings.SplitN(text, ".", 2)[0] + "."
	case strings.Contains(template, "الفكرة الرئيسية"):
		return fmt.Sprintf("الفكرة الرئيسية في هذا النص تتعلق بـ %s...", firstRunes(text, 80))
	case strings.Contains(template, "النقاط المهمة"):
		return fmt.Sprintf("النقاط المهمة تشمل: %s...", firstRunes(text, 100))
	case strings.Contains(template, "تعليق"):
		return fmt.Sprintf("هذا نص مهم يتناول %s... ويقدم معلومات قيمة حول الموضوع.", firstRunes(text, 60))
	case strings.Contains(template, "موضوع"):
		return fmt.Sprintf("موضوع هذا النص يدور حول %s...", firstRunes(text, 80))
	}
	return firstRunes(text, 150) + "..."
}

// SampleConversations returns a tiny built-in training set for trying
// the pipeline without a corpus.
func SampleConversations() []ConversationRecord {
	system := "أنت مساعد ذكي متخصص في التكنولوجيا"
	return []ConversationRecord{
		{
			Messages: []ollama.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: "ما هو الذكاء الاصطناعي؟"},
				{Role: "assistant", Content: "الذكاء الاصطناعي هو مجال في علوم الحاسوب يهدف إلى إنشاء أنظمة قادرة على أداء مهام تتطلب عادة ذكاءً بشرياً، مثل التعلم واتخاذ القرارات وحل المشكلات."},
			},
		},
		{
			Messages: []ollama.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: "كيف يعمل التعلم الآلي؟"},
				{Role: "assistant", Content: "التعلم الآلي يعمل من خلال تدريب النماذج على كميات كبيرة من البيانات لتتعلم الأنماط والعلاقات، ثم تستخدم هذه المعرفة للتنبؤ أو اتخاذ قرارات بشأن بيانات جديدة."},
			},
		},
	}
}

// WriteSamples writes the built-in sample conversations to path.
func WriteSamples(path string) (int, error) {
	samples := SampleConversations()
	if err := WriteJSONL(path, samples); err != nil {
		return 0, err
	}
	return len(samples), nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

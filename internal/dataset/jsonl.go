package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/ollama"
)

// A training file line can embed several chunks of book text.
const maxRecordSize = 4 * 1024 * 1024

// ConversationRecord is the chat-style training shape.
type ConversationRecord struct {
	Messages []ollama.Message `json:"messages"`
}

// InstructionRecord is the instruction-tuning shape.
type InstructionRecord struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input,omitempty"`
	Output      string `json:"output"`
	Source      string `json:"source,omitempty"`
}

// CompletionRecord is the prompt/continuation shape.
type CompletionRecord struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Record is the union of all three training shapes, used when reading
// files whose format isn't known in advance.
type Record struct {
	Messages    []ollama.Message `json:"messages,omitempty"`
	Instruction string           `json:"instruction,omitempty"`
	Input       string           `json:"input,omitempty"`
	Output      string           `json:"output,omitempty"`
	Prompt      string           `json:"prompt,omitempty"`
	Completion  string           `json:"completion,omitempty"`
	Source      string           `json:"source,omitempty"`
}

// Kind reports which training shape the record carries: "conversation",
// "instruction", "completion", or "unknown".
func (r Record) Kind() string {
	switch {
	case len(r.Messages) > 0:
		return "conversation"
	case r.Instruction != "":
		return "instruction"
	case r.Prompt != "":
		return "completion"
	}
	return "unknown"
}

// Render formats the record as a readable training example with Arabic
// role labels. System messages are omitted; they repeat per line.
func (r Record) Render() string {
	var b strings.Builder

	switch r.Kind() {
	case "conversation":
		for _, msg := range r.Messages {
			switch msg.Role {
			case "user":
				fmt.Fprintf(&b, "المستخدم: %s\n", msg.Content)
			case "assistant":
				fmt.Fprintf(&b, "المساعد: %s\n", msg.Content)
			}
		}
	case "instruction":
		fmt.Fprintf(&b, "التعليمات: %s\n", r.Instruction)
		if r.Input != "" {
			fmt.Fprintf(&b, "المدخل: %s\n", r.Input)
		}
		fmt.Fprintf(&b, "الإخراج: %s\n", r.Output)
	case "completion":
		fmt.Fprintf(&b, "المطلوب: %s\nالإجابة: %s\n", r.Prompt, r.Completion)
	}

	return b.String()
}

// WriteJSONL writes one record per line to path. HTML escaping is off so
// Arabic text and characters like < or & land in the file unmangled.
func WriteJSONL[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDataset,
			"Failed to create "+path,
			"Check the directory exists and is writable")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return errors.WrapWithCode(err, errors.ErrDataset,
				"Failed to encode training record",
				"This is a bug in mirqab - please report it")
		}
	}

	if err := w.Flush(); err != nil {
		return errors.WrapWithCode(err, errors.ErrDataset,
			"Failed to write "+path,
			"Check free disk space")
	}
	return nil
}

// ReadRecords reads a JSONL training file, reporting the line number of
// the first malformed record.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDataset,
			"Training file not found: "+path,
			"Generate one with: mirqab dataset build")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordSize)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrDataset,
				fmt.Sprintf("Invalid JSON on line %d of %s", lineNo, path),
				"Each line must be one complete JSON object")
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDataset,
			"Failed to read "+path,
			"Check the file isn't corrupted")
	}
	return records, nil
}

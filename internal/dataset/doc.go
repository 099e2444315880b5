// Package dataset turns raw Arabic text corpora into JSONL training
// files for Ollama fine-tuning.
//
// Three record shapes are produced, one per training style:
//
//	conversation  {"messages": [{"role","content"}, ...]}
//	instruction   {"instruction", "input", "output", "source"}
//	completion    {"prompt", "completion"}
//
// All output is UTF-8 with Arabic text written as-is, never \u-escaped,
// so the files stay reviewable by humans. Lengths are measured in runes
// throughout: byte counts would penalize Arabic text, where most letters
// are two bytes.
package dataset

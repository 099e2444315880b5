package ollama

import (
	"fmt"
	"os"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
)

// DefaultSystemPrompt is used when no system prompt is supplied.
const DefaultSystemPrompt = "أنت مساعد ذكي مُدرب على بيانات مخصصة"

// systemFooter is always appended to the SYSTEM block so fine-tuned
// models keep the bilingual assistant persona.
const systemFooter = "أنت مساعد ذكي مُدرب على بيانات مخصصة. تجيب بدقة وبأسلوب مفيد.\n" +
	"You are an intelligent assistant trained on custom data. You respond accurately and helpfully."

// Parameter is one PARAMETER line in a Modelfile.
type Parameter struct {
	Name  string
	Value string
}

// DefaultParameters are the sampling settings written into generated
// Modelfiles.
func DefaultParameters() []Parameter {
	return []Parameter{
		{Name: "temperature", Value: "0.7"},
		{Name: "top_p", Value: "0.9"},
		{Name: "top_k", Value: "40"},
		{Name: "repeat_penalty", Value: "1.1"},
	}
}

// Modelfile describes a derived model for 'ollama create'.
type Modelfile struct {
	// From is the base model, e.g. "llama3.2:3b". Required.
	From string

	// System is the system prompt. DefaultSystemPrompt is used when empty.
	System string

	// Adapter is an optional path to fine-tuned adapter weights.
	Adapter string

	// Parameters are the PARAMETER lines. DefaultParameters when nil.
	Parameters []Parameter
}

// Validate checks the Modelfile has everything a render needs.
func (m *Modelfile) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return errors.New(errors.ErrValidate,
			"Modelfile needs a base model (FROM)",
			"Set one with --base, e.g. --base llama3.2:3b")
	}
	return nil
}

// Render produces the Modelfile text in the format 'ollama create'
// expects.
func (m *Modelfile) Render() string {
	system := m.System
	if system == "" {
		system = DefaultSystemPrompt
	}

	params := m.Parameters
	if params == nil {
		params = DefaultParameters()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FROM %s\n", m.From)

	b.WriteString("\n# System prompt in Arabic and English\n")
	b.WriteString("SYSTEM \"\"\"\n")
	b.WriteString(system)
	b.WriteString("\n\n")
	b.WriteString(systemFooter)
	b.WriteString("\n\"\"\"\n")

	if len(params) > 0 {
		b.WriteString("\n# Training parameters\n")
		for _, p := range params {
			fmt.Fprintf(&b, "PARAMETER %s %s\n", p.Name, p.Value)
		}
	}

	if m.Adapter != "" {
		b.WriteString("\n# Custom training data\n")
		fmt.Fprintf(&b, "ADAPTER %s\n", m.Adapter)
	}

	return b.String()
}

// WriteFile validates and renders the Modelfile to path.
func (m *Modelfile) WriteFile(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(m.Render()), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrOllama,
			"Failed to write Modelfile to "+path,
			"Check the directory exists and is writable")
	}
	return nil
}

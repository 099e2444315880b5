package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
)

// Machine mode flag - when true, commands emit the JSON envelope and
// suppress human-friendly decorations
var machineMode bool

// JSONEnvelope wraps command output in a consistent structure for
// machine parsing. All --json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output. Coarser than the internal
// codes: each maps to the action automation should take.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeMonitorOffline = "MONITOR_OFFLINE"
	ErrCodeOllamaOffline  = "OLLAMA_OFFLINE"
	ErrCodeOllamaAPI      = "OLLAMA_API_ERROR"
	ErrCodeDatasetFailed  = "DATASET_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// failJSON mirrors an error into the stdout envelope when --json is on,
// then returns it unchanged for the usual stderr reporting and exit
// code.
func failJSON(err error) error {
	if machineMode && err != nil {
		WriteJSONFromError(os.Stdout, err) //nolint:errcheck // stderr still carries the error
	}
	return err
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code
// mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	if merr, ok := err.(*errors.Error); ok {
		return &JSONError{
			Code:       mapErrorCode(merr.Code, merr.Message),
			Message:    merr.Message,
			Suggestion: merr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
// ErrTransport covers both the monitor and the Ollama daemon, so the
// message decides which endpoint was unreachable.
func mapErrorCode(internalCode, message string) string {
	msgLower := strings.ToLower(message)

	switch internalCode {
	case errors.ErrConfig:
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrValidate:
		return ErrCodeInvalidInput
	case errors.ErrTransport:
		if strings.Contains(msgLower, "ollama") {
			return ErrCodeOllamaOffline
		}
		return ErrCodeMonitorOffline
	case errors.ErrOllama:
		return ErrCodeOllamaAPI
	case errors.ErrDataset:
		return ErrCodeDatasetFailed
	}

	return ErrCodeUnknown
}

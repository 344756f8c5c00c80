package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Mode selects the collaborator operation.
type Mode string

const (
	// ModeSingle processes one image or PDF and returns a Result.
	ModeSingle Mode = "single"
	// ModeBatch processes a folder and returns a BatchResult.
	ModeBatch Mode = "batch"
	// ModeAnalyze profiles a PDF without recognition and returns a Profile.
	ModeAnalyze Mode = "analyze"
)

// Engine is the external OCR/analysis collaborator. Implementations own
// their timeout policy; a context cancels the call from this side.
type Engine interface {
	Recognize(ctx context.Context, path, documentTypeHint string) (*Result, error)
	RecognizeBatch(ctx context.Context, dir, documentTypeHint string) (*BatchResult, error)
	Analyze(ctx context.Context, path string) (*Profile, error)
}

// CollaboratorError reports a failed or malformed collaborator call. The
// collaborator's message is preserved verbatim and never retried here.
type CollaboratorError struct {
	Message string
}

func (e *CollaboratorError) Error() string {
	return "ocr collaborator: " + e.Message
}

// CLIEngine invokes the recognition process as a subprocess speaking JSON on
// stdout: <interpreter> <script> <mode> <path> [--document-type <hint>].
type CLIEngine struct {
	interpreter string
	script      string
}

// NewCLIEngine creates an engine client for the given interpreter and script.
func NewCLIEngine(interpreter, script string) *CLIEngine {
	return &CLIEngine{interpreter: interpreter, script: script}
}

// Recognize runs a single-unit recognition call. A collaborator-reported
// failure (success=false) is returned as a Result, not an error; only
// process, parse, and schema failures become errors.
func (e *CLIEngine) Recognize(ctx context.Context, path, documentTypeHint string) (*Result, error) {
	raw, err := e.run(ctx, ModeSingle, path, documentTypeHint)
	if err != nil {
		return nil, err
	}
	var res Result
	if err := decodeValidated(ModeSingle, raw, &res); err != nil {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, &CollaboratorError{Message: err.Error()}
	}
	return &res, nil
}

// RecognizeBatch runs a folder recognition call. Per-file failures stay
// inside the returned BatchResult.
func (e *CLIEngine) RecognizeBatch(ctx context.Context, dir, documentTypeHint string) (*BatchResult, error) {
	raw, err := e.run(ctx, ModeBatch, dir, documentTypeHint)
	if err != nil {
		return nil, err
	}
	var res BatchResult
	if err := decodeValidated(ModeBatch, raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Analyze runs an analysis-only call for a PDF; no recognition is performed.
func (e *CLIEngine) Analyze(ctx context.Context, path string) (*Profile, error) {
	raw, err := e.run(ctx, ModeAnalyze, path, "")
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := decodeValidated(ModeAnalyze, raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (e *CLIEngine) run(ctx context.Context, mode Mode, path, documentTypeHint string) ([]byte, error) {
	args := []string{e.script, string(mode), path}
	if documentTypeHint != "" {
		args = append(args, "--document-type", documentTypeHint)
	}

	cmd := exec.CommandContext(ctx, e.interpreter, args...) //nolint:gosec // G204: collaborator binary comes from configuration
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, &CollaboratorError{Message: fmt.Sprintf("%s call failed: %s", mode, msg)}
	}
	return stdout.Bytes(), nil
}

// decodeValidated validates raw JSON against the mode's schema, then
// unmarshals it into out.
func decodeValidated(mode Mode, raw []byte, out any) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &CollaboratorError{Message: fmt.Sprintf("unparseable %s output: %v", mode, err)}
	}
	if err := ValidatePayload(mode, doc); err != nil {
		return &CollaboratorError{Message: err.Error()}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &CollaboratorError{Message: fmt.Sprintf("unexpected %s output shape: %v", mode, err)}
	}
	return nil
}

// Status reports whether the collaborator's pieces are in place.
type Status struct {
	Interpreter      string `json:"interpreter"`
	InterpreterFound bool   `json:"interpreter_found"`
	Script           string `json:"script"`
	ScriptFound      bool   `json:"script_found"`
	Ready            bool   `json:"ready"`
}

// CheckStatus verifies the interpreter and script exist on disk.
func (e *CLIEngine) CheckStatus() Status {
	s := Status{Interpreter: e.interpreter, Script: e.script}
	if _, err := os.Stat(e.interpreter); err == nil {
		s.InterpreterFound = true
	}
	if _, err := os.Stat(e.script); err == nil {
		s.ScriptFound = true
	}
	s.Ready = s.InterpreterFound && s.ScriptFound
	return s
}
